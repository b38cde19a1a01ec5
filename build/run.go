// Package build turns a directory of unit containers into a corpus: it
// discovers the containers, decodes them in parallel, merges the result and
// reports what failed along the way.
package build

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/doccorpus/bitcode"
	"github.com/wippyai/doccorpus/corpus"
	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/merge"
	"github.com/wippyai/doccorpus/meta"
)

// Options configures a build.
type Options struct {
	// Progress, when set, is called after each unit is decoded with the
	// number of units done so far. Calls are serialized.
	Progress func(done, total int, path string)

	Dir     string
	Include []string
	Exclude []string

	// Version is the expected schema version; zero selects the current one.
	Version uint64
	// Workers bounds parallel decoding and merging; zero means GOMAXPROCS.
	Workers int
	// Debounce is the quiet period Watch waits for before rebuilding.
	Debounce time.Duration
}

// UnitFailure is a unit that could not be decoded and was left out.
type UnitFailure struct {
	Err  error
	Path string
}

// Report is the outcome of a build.
type Report struct {
	Corpus        *corpus.Corpus
	Failures      []UnitFailure // in discovery order
	Warnings      []merge.Warning
	MergeFailures []merge.Failure
	Units         int // units discovered
	Failed        int // units left out
}

// Run discovers the containers under opts.Dir and builds them.
func Run(ctx context.Context, opts Options) (*Report, error) {
	paths, err := Discover(opts.Dir, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	return RunPaths(ctx, paths, opts)
}

// RunPaths builds the given containers. A unit that fails to read or decode
// is reported and excluded; the others still make up the corpus. Units are
// merged in the order given. Only cancellation of ctx fails the build.
func RunPaths(ctx context.Context, paths []string, opts Options) (*Report, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	units := make([][]meta.Info, len(paths))
	errs := make([]error, len(paths))

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			units[i], errs[i] = decodeUnit(path, opts.Version)
			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(paths), path)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Units: len(paths)}
	decoded := make([][]meta.Info, 0, len(paths))
	for i, path := range paths {
		if errs[i] != nil {
			Logger().Warn("unit failed",
				zap.String("unit", path),
				zap.Error(errs[i]))
			report.Failures = append(report.Failures, UnitFailure{Path: path, Err: errs[i]})
			continue
		}
		decoded = append(decoded, units[i])
	}
	report.Failed = len(report.Failures)

	res := merge.Merge(decoded, merge.Options{Workers: workers})
	report.Corpus = corpus.New(res.Infos)
	report.Warnings = res.Warnings
	report.MergeFailures = res.Failures

	Logger().Info("build finished",
		zap.Int("units", report.Units),
		zap.Int("failed", report.Failed),
		zap.Int("entities", report.Corpus.Len()),
		zap.Int("warnings", len(report.Warnings)),
		zap.Int("merge_failures", len(report.MergeFailures)))
	return report, nil
}

func decodeUnit(path string, version uint64) ([]meta.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseBuild, errors.KindIO).
			Unit(path).
			Cause(err).
			Detail("read unit").
			Build()
	}
	return bitcode.DecodeWithOptions(data, bitcode.DecodeOptions{Unit: path, Version: version})
}
