package ingest

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Backend selects how the input file is read.
type Backend string

const (
	// BackendMmap maps the file and aggregates newline-aligned partitions in
	// parallel.
	BackendMmap Backend = "mmap"
	// BackendLines reads the file line by line on a single goroutine.
	BackendLines Backend = "lines"
	// BackendStream reads batches of lines on one goroutine and aggregates
	// them on Workers others.
	BackendStream Backend = "stream"
)

// Algorithm selects how the two columns are paired.
type Algorithm string

const (
	AlgorithmBuckets Algorithm = "buckets"
	AlgorithmSort    Algorithm = "sort"
)

const defaultBatchSize = 1_000

type Options struct {
	Backend   Backend
	Algorithm Algorithm
	// Workers bounds the aggregation goroutines of the mmap and stream
	// backends.
	Workers int
	// BatchSize is the number of lines per batch of the stream backend.
	BatchSize int
	Logger    *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Backend:   BackendMmap,
		Algorithm: AlgorithmBuckets,
		Workers:   runtime.NumCPU(),
		BatchSize: defaultBatchSize,
		Logger:    slog.Default(),
	}
}

// Validate reports unknown backends or algorithms. Zero values are valid and
// replaced by defaults.
func (o Options) Validate() error {
	switch o.Backend {
	case "", BackendMmap, BackendLines, BackendStream:
	default:
		return fmt.Errorf("unknown backend %q", o.Backend)
	}
	switch o.Algorithm {
	case "", AlgorithmBuckets, AlgorithmSort:
	default:
		return fmt.Errorf("unknown algorithm %q", o.Algorithm)
	}
	return nil
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Backend == "" {
		o.Backend = d.Backend
	}
	if o.Algorithm == "" {
		o.Algorithm = d.Algorithm
	}
	if o.Workers < 1 {
		o.Workers = d.Workers
	}
	if o.BatchSize < 1 {
		o.BatchSize = d.BatchSize
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
