package ingest

import (
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sync/errgroup"

	"github.com/avamsi/histdist/internal/distance"
)

// mapFile returns a read-only view of the file at path. release must be
// called once the view is no longer used.
func mapFile(path string) (data []byte, release func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &ReadError{path, "open", err}
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, nil, &ReadError{path, "stat", err}
	}
	if fi.IsDir() {
		return nil, nil, &ReadError{path, "open", ErrIsDir}
	}
	// Zero-length mappings are rejected by the kernel.
	if fi.Size() == 0 {
		return nil, func() error { return nil }, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, &ReadError{path, "mmap", err}
	}
	return m, m.Unmap, nil
}

// Split cuts data into at most n parts, each ending right after a newline
// (except possibly the last), so that no line spans two parts.
func Split(data []byte, n int) [][]byte {
	parts := make([][]byte, 0, max(n, 1))
	for ; n > 1 && len(data) > 0; n-- {
		end := len(data) / n
		if i := bytes.IndexByte(data[end:], '\n'); i >= 0 {
			end += i + 1
		} else {
			end = len(data)
		}
		parts, data = append(parts, data[:end]), data[end:]
	}
	if len(data) > 0 {
		parts = append(parts, data)
	}
	return parts
}

func aggregateMapped(path string, opts Options) (*distance.Histogram, tally, error) {
	data, release, err := mapFile(path)
	if err != nil {
		return nil, tally{}, err
	}
	defer release()

	var (
		parts   = Split(data, opts.Workers)
		shards  = make([]*distance.Histogram, len(parts))
		tallies = make([]tally, len(parts))
		g       errgroup.Group
	)
	for i, part := range parts {
		g.Go(func() error {
			h := distance.NewHistogram()
			tallies[i].add(h.AddLines(part))
			shards[i] = h
			return nil
		})
	}
	_ = g.Wait()
	opts.Logger.Debug("aggregated partitions", "path", path, "partitions", len(parts))
	h, t := reduce(shards, tallies)
	return h, t, nil
}
