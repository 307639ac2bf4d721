package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"

	"github.com/avamsi/ergo/assert"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/avamsi/histdist/internal/ingest"
)

type outcome struct {
	report ingest.Report
	err    error
}

// run computes every path, at most jobs at a time, and prints the results
// in path order. It returns the number of paths that failed.
func run(paths []string, jobs int, opts ingest.Options, w io.Writer) int {
	var (
		results SkipList[string, outcome]
		mu      sync.Mutex
		g       errgroup.Group
	)
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	g.SetLimit(max(jobs, 1))
	for _, path := range paths {
		g.Go(func() error {
			r, err := ingest.Compute(path, opts)
			mu.Lock()
			results.Put(path, outcome{r, err})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for path, o := range results.All() {
		if o.err != nil {
			opts.Logger.Error("compute failed", "path", path, "err", o.err)
			failed++
			continue
		}
		r := o.report
		fmt.Fprintf(w, "%s: distance %d (valid %d, skipped %d) in %dms\n",
			path, r.Distance, r.Valid, r.Skipped, r.Elapsed.Milliseconds())
	}
	return failed
}

func realMain() int {
	var (
		backend    = pflag.StringP("backend", "b", string(ingest.BackendMmap), "input backend: mmap, lines or stream")
		algorithm  = pflag.StringP("algorithm", "a", string(ingest.AlgorithmBuckets), "pairing algorithm: buckets or sort")
		workers    = pflag.IntP("workers", "w", runtime.NumCPU(), "aggregation goroutines per file")
		batchSize  = pflag.Int("batch-size", 1_000, "lines per batch (stream backend)")
		jobs       = pflag.IntP("jobs", "j", 1, "files computed concurrently")
		verbose    = pflag.BoolP("verbose", "v", false, "log at debug level")
		cpuProfile = pflag.String("cpuprofile", "", "write a CPU profile to `file`")
		traceFile  = pflag.String("trace", "", "write an execution trace to `file`")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file...\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := ingest.Options{
		Backend:   ingest.Backend(*backend),
		Algorithm: ingest.Algorithm(*algorithm),
		Workers:   *workers,
		BatchSize: *batchSize,
		Logger:    logger,
	}
	if err := opts.Validate(); err != nil {
		logger.Error("invalid flags", "err", err)
		return 2
	}
	if pflag.NArg() == 0 {
		pflag.Usage()
		return 2
	}

	if *cpuProfile != "" {
		assert.Nil(pprof.StartCPUProfile(assert.Ok(os.Create(*cpuProfile))))
		defer pprof.StopCPUProfile()
	}
	if *traceFile != "" {
		assert.Nil(trace.Start(assert.Ok(os.Create(*traceFile))))
		defer trace.Stop()
	}

	if run(pflag.Args(), *jobs, opts, os.Stdout) > 0 {
		return 1
	}
	return 0
}

func main() {
	os.Exit(realMain())
}
