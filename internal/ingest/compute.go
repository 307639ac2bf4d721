package ingest

import (
	"log/slog"
	"time"

	"github.com/avamsi/histdist/internal/distance"
)

type tally struct {
	valid, skipped int
}

func (t *tally) add(valid, skipped int) {
	t.valid, t.skipped = t.valid+valid, t.skipped+skipped
}

func reduce(shards []*distance.Histogram, tallies []tally) (*distance.Histogram, tally) {
	var (
		global = distance.NewHistogram()
		t      tally
	)
	for i, h := range shards {
		global.Merge(h)
		t.add(tallies[i].valid, tallies[i].skipped)
	}
	return global, t
}

// Report is the outcome of Compute for one input.
type Report struct {
	Path string
	distance.Result
	// Valid and Skipped count parsed and malformed lines; blank lines are in
	// neither.
	Valid, Skipped int
	Elapsed        time.Duration
}

// Compute returns the total distance between the two columns of the file at
// path. Only a failure to open or read the file is an error (*ReadError);
// malformed lines are skipped and columns of unequal length are logged.
func Compute(path string, opts Options) (Report, error) {
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}
	opts = opts.withDefaults()
	var (
		log   = opts.Logger.With("path", path)
		start = time.Now()
		r     = Report{Path: path}
		t     tally
		err   error
	)
	if opts.Algorithm == AlgorithmSort {
		r.Result, t, err = computeSorted(path)
	} else {
		var h *distance.Histogram
		switch opts.Backend {
		case BackendLines:
			h, t, err = aggregateLines(path)
		case BackendStream:
			h, t, err = aggregateStream(path, opts)
		default:
			h, t, err = aggregateMapped(path, opts)
		}
		if err == nil {
			r.Result = sweep(h, log)
		}
	}
	if err != nil {
		return Report{}, err
	}
	r.Valid, r.Skipped, r.Elapsed = t.valid, t.skipped, time.Since(start)

	if r.Skipped > 0 {
		log.Debug("skipped malformed lines", "skipped", r.Skipped)
	}
	log.Debug("computed distance",
		"backend", opts.Backend,
		"algorithm", opts.Algorithm,
		"workers", opts.Workers,
		"elapsed", r.Elapsed)
	return r, nil
}

// sweep runs distance.Sweep and warns when the columns had different
// lengths. Every valid line feeds both columns, so files never trigger the
// warning; histograms assembled elsewhere can.
func sweep(h *distance.Histogram, log *slog.Logger) distance.Result {
	r := distance.Sweep(h)
	if r.Unmatched > 0 {
		log.Warn("columns differ in length, unmatched values ignored", "unmatched", r.Unmatched)
	}
	return r
}

func computeSorted(path string) (distance.Result, tally, error) {
	data, release, err := mapFile(path)
	if err != nil {
		return distance.Result{}, tally{}, err
	}
	defer release()
	left, right, skipped := distance.Columns(data)
	return distance.SortedDistance(left, right), tally{len(left), skipped}, nil
}
