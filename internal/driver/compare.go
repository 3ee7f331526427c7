package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fortio.org/safecast"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tradiff/internal/ast"
	"tradiff/internal/compare"
	"tradiff/internal/diag"
	"tradiff/internal/observ"
	"tradiff/internal/parser"
	"tradiff/internal/pipeline"
	"tradiff/internal/source"
)

// Which names the side of a comparison a file is on.
const (
	First  = "first"
	Second = "second"
)

// Options configures a comparison run.
type Options struct {
	// Charsets holds the WHATWG labels for the first and second file.
	// Empty labels mean UTF-8.
	Charsets [2]string

	// MaxDiagnostics caps the diagnostics kept per file; zero means no cap.
	MaxDiagnostics int

	// Cache, if set, stores and reuses parses of error-free files.
	Cache *DiskCache

	Progress pipeline.ProgressSink
	Timer    *observ.Timer
}

// FatalError reports a file that could not be turned into fragments at all:
// unreadable, undecodable, or stopped by an unrecoverable parse error.
type FatalError struct {
	Which string
	Path  string
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("the %s file (%s) could not be parsed: %v", e.Which, e.Path, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// FileResult is the parse of one side of a comparison.
type FileResult struct {
	Which     string
	Path      string
	FileID    source.FileID
	Fragments []ast.Fragment
	Entries   []ast.Entry // sorted by id
	Errors    []*parser.Error
	Bag       *diag.Bag
	Cached    bool
}

// CompareResult is everything a comparison run produced.
type CompareResult struct {
	FileSet *source.FileSet
	First   *FileResult
	Second  *FileResult
	Report  compare.Report
	Bag     *diag.Bag // merged diagnostics, first file before second
	Timing  *observ.Report
}

// Compare reads, decodes and parses both files in parallel, then reports
// duplicate ids and the id difference between them.
//
// A *FatalError is returned when a file cannot be parsed; when both files
// fail, the first file's error wins. After a fatal parse error the result is
// still returned with the failing file's diagnostics and no report.
func Compare(ctx context.Context, firstPath, secondPath string, opts Options) (*CompareResult, error) {
	paths := [2]string{firstPath, secondPath}
	which := [2]string{First, Second}
	for _, p := range paths {
		pipeline.Emit(opts.Progress, pipeline.Event{File: p, Stage: pipeline.StageDecode, Status: pipeline.StatusQueued})
	}

	var loaded [2]decoded
	var loadErrs [2]error
	g, gctx := errgroup.WithContext(ctx)
	for i := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			done := opts.Timer.Track("decode " + which[i])
			started := time.Now()
			pipeline.Emit(opts.Progress, pipeline.Event{File: paths[i], Stage: pipeline.StageDecode, Status: pipeline.StatusWorking})
			loaded[i], loadErrs[i] = readAndDecode(paths[i], opts.Charsets[i])
			done(loaded[i].label)
			emitOutcome(opts.Progress, paths[i], pipeline.StageDecode, loadErrs[i], time.Since(started))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, err := range loadErrs {
		if err != nil {
			return nil, &FatalError{Which: which[i], Path: paths[i], Err: err}
		}
	}

	fs := source.NewFileSet()
	var results [2]*FileResult
	for i := range loaded {
		bag := diag.NewBag(opts.MaxDiagnostics)
		results[i] = &FileResult{
			Which:  which[i],
			Path:   paths[i],
			FileID: loaded[i].register(fs, bag),
			Bag:    bag,
		}
	}

	var fatal [2]error
	g, gctx = errgroup.WithContext(ctx)
	for i := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fatal[i] = parseInto(results[i], fs.Get(results[i].FileID), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, err := range fatal {
		if err != nil {
			res := &CompareResult{FileSet: fs, First: results[0], Second: results[1], Bag: diag.NewBag(opts.MaxDiagnostics)}
			res.Bag.Merge(results[i].Bag)
			return res, &FatalError{Which: which[i], Path: paths[i], Err: err}
		}
	}

	done := opts.Timer.Track("compare")
	pipeline.Emit(opts.Progress, pipeline.Event{Stage: pipeline.StageCompare, Status: pipeline.StatusWorking})
	report := compare.Compare(results[0].Entries, results[1].Entries)
	for _, r := range results {
		reportDuplicates(r)
		r.Bag.Sort()
	}
	done(fmt.Sprintf("+%d -%d", len(report.Delta.Added), len(report.Delta.Removed)))
	pipeline.Emit(opts.Progress, pipeline.Event{Stage: pipeline.StageCompare, Status: pipeline.StatusDone})

	merged := diag.NewBag(opts.MaxDiagnostics)
	merged.Merge(results[0].Bag)
	merged.Merge(results[1].Bag)

	res := &CompareResult{
		FileSet: fs,
		First:   results[0],
		Second:  results[1],
		Report:  report,
		Bag:     merged,
	}
	if opts.Timer != nil {
		rep := opts.Timer.Report()
		res.Timing = &rep
	}
	return res, nil
}

// parseInto fills r with the fragments of file, consulting the cache first.
// It returns the fatal parse error, if any.
func parseInto(r *FileResult, file *source.File, opts Options) error {
	done := opts.Timer.Track("parse " + r.Which)
	started := time.Now()
	pipeline.Emit(opts.Progress, pipeline.Event{File: r.Path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})

	logger := log.With().Str("file", r.Which).Str("path", r.Path).Logger()

	if frags, ok := loadCached(opts.Cache, file); ok {
		r.Fragments = frags
		r.Cached = true
		logger.Debug().Msg("parse cache hit")
	} else {
		maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
		if err != nil {
			return err
		}
		frags, errs, err := parser.Parse(file, nil, parser.Options{
			MaxErrors: maxErrors,
			Reporter:  diag.NewDedupReporter(diag.BagReporter{Bag: r.Bag}),
		})
		if err != nil {
			done("fatal")
			emitOutcome(opts.Progress, r.Path, pipeline.StageParse, err, time.Since(started))
			logger.Debug().Err(err).Msg("fatal parse error")
			return err
		}
		r.Fragments, r.Errors = frags, errs
		if len(errs) == 0 {
			storeCached(opts.Cache, file, frags)
		}
	}

	r.Entries = compare.Project(r.Fragments)
	logger.Debug().
		Str("charset", file.Charset).
		Int("entries", len(r.Entries)).
		Int("recovered", len(r.Errors)).
		Bool("cached", r.Cached).
		Msg("parsed")
	done(fmt.Sprintf("%d entries", len(r.Entries)))
	emitOutcome(opts.Progress, r.Path, pipeline.StageParse, nil, time.Since(started))
	return nil
}

func loadCached(cache *DiskCache, file *source.File) ([]ast.Fragment, bool) {
	if cache == nil {
		return nil, false
	}
	var payload DiskPayload
	found, err := cache.Get(file.Hash, &payload)
	if err != nil {
		log.Debug().Err(err).Str("path", file.Path).Msg("ignoring unreadable cache entry")
		return nil, false
	}
	if !found {
		log.Debug().Str("path", file.Path).Msg("parse cache miss")
		return nil, false
	}
	return payloadToFragments(&payload, file.ID), true
}

func storeCached(cache *DiskCache, file *source.File, frags []ast.Fragment) {
	if cache == nil {
		return
	}
	if err := cache.Put(file.Hash, fragmentsToPayload(frags)); err != nil {
		log.Debug().Err(err).Str("path", file.Path).Msg("failed to write parse cache")
	}
}

func emitOutcome(sink pipeline.ProgressSink, path string, stage pipeline.Stage, err error, elapsed time.Duration) {
	status := pipeline.StatusDone
	if err != nil {
		status = pipeline.StatusError
	}
	pipeline.Emit(sink, pipeline.Event{File: path, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// IsFatal reports whether err stopped the comparison because of one input
// file rather than a cancelled context.
func IsFatal(err error) (*FatalError, bool) {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
