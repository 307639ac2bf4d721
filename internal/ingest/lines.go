package ingest

import (
	"bufio"
	"errors"
	"io"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/avamsi/histdist/internal/distance"
)

const lineBufferSize = 64 << 10

func openSection(path string) (*mmap.ReaderAt, *io.SectionReader, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, &ReadError{path, "stat", err}
	}
	if fi.IsDir() {
		return nil, nil, &ReadError{path, "open", ErrIsDir}
	}
	f, err := mmap.Open(path)
	if err != nil {
		return nil, nil, &ReadError{path, "open", err}
	}
	return f, io.NewSectionReader(f, 0, int64(f.Len())), nil
}

// eachLine calls fn with every line of r, including its '\n' if present.
// line is only valid until fn returns. A line longer than lineBufferSize is
// cut to its first lineBufferSize bytes; ParseLine only reads the first
// Width, so the outcome is the same as for the whole line.
func eachLine(r io.Reader, fn func(line []byte)) error {
	var (
		br       = bufio.NewReaderSize(r, lineBufferSize)
		overflow bool
	)
	for {
		line, err := br.ReadSlice('\n')
		if !overflow && len(line) > 0 {
			fn(line)
		}
		if overflow = errors.Is(err, bufio.ErrBufferFull); overflow {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func aggregateLines(path string) (*distance.Histogram, tally, error) {
	f, r, err := openSection(path)
	if err != nil {
		return nil, tally{}, err
	}
	defer f.Close()
	var (
		h = distance.NewHistogram()
		t tally
	)
	err = eachLine(r, func(line []byte) {
		t.add(h.AddLines(line))
	})
	if err != nil {
		return nil, tally{}, &ReadError{path, "read", err}
	}
	return h, t, nil
}
