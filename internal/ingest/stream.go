package ingest

import (
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/avamsi/histdist/internal/distance"
)

// readBatches packs whole lines from r, newline-terminated, into batches of
// up to size lines and sends them on out. Batches are never reused, so
// receivers own them.
func readBatches(r io.Reader, size int, out chan<- []byte) error {
	var (
		capacity = size * (distance.Width + 1)
		batch    = make([]byte, 0, capacity)
		n        int
	)
	err := eachLine(r, func(line []byte) {
		batch = append(batch, line...)
		if line[len(line)-1] != '\n' {
			batch = append(batch, '\n')
		}
		if n++; n == size {
			out <- batch
			batch, n = make([]byte, 0, capacity), 0
		}
	})
	if n > 0 {
		out <- batch
	}
	return err
}

// AggregateStream reads lines from r on one goroutine and aggregates them on
// workers others, each into a private Histogram, merging them at the end.
// Channel capacity equals workers, which bounds the batches in flight.
func AggregateStream(r io.Reader, workers, batchSize int) (*distance.Histogram, int, int, error) {
	workers, batchSize = max(workers, 1), max(batchSize, 1)
	var (
		batches = make(chan []byte, workers)
		shards  = make([]*distance.Histogram, workers)
		tallies = make([]tally, workers)
		g       errgroup.Group
	)
	g.Go(func() error {
		defer close(batches)
		return readBatches(r, batchSize, batches)
	})
	for i := range workers {
		g.Go(func() error {
			h := distance.NewHistogram()
			for batch := range batches {
				tallies[i].add(h.AddLines(batch))
			}
			shards[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, 0, err
	}
	h, t := reduce(shards, tallies)
	return h, t.valid, t.skipped, nil
}

func aggregateStream(path string, opts Options) (*distance.Histogram, tally, error) {
	f, r, err := openSection(path)
	if err != nil {
		return nil, tally{}, err
	}
	defer f.Close()
	h, valid, skipped, err := AggregateStream(r, opts.Workers, opts.BatchSize)
	if err != nil {
		return nil, tally{}, &ReadError{path, "read", err}
	}
	return h, tally{valid, skipped}, nil
}
