// Package batch orchestrates rewriting a list of files
package batch

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/fixref/pkg/log"
	"github.com/walteh/fixref/pkg/rewrite"
	"github.com/walteh/fixref/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the main interface for a fixref batch run
type Operator interface {
	// Run processes every file in the batch and reports per-file outcomes
	Run(ctx context.Context) error
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Paths are the files to rewrite, in command-line order
	Paths []string
	// Rewriter performs the per-file substitution
	Rewriter *rewrite.Rewriter
	// Status tracks per-file outcomes
	Status *status.Manager
	// Logger writes per-file console lines
	Logger *log.Logger
	// FailFast aborts the batch on the first failing file
	FailFast bool
	// Jobs is the number of files processed at once; values below 2 mean
	// strictly sequential processing in argument order
	Jobs int
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if len(opts.Paths) == 0 {
		return nil, errors.Errorf("at least one file path is required")
	}
	if opts.Rewriter == nil {
		return nil, errors.Errorf("rewriter is required")
	}
	if opts.Status == nil {
		return nil, errors.Errorf("status manager is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	return &operator{opts: opts}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	opts Options
}

// Run processes the batch sequentially or, when Jobs > 1, with a bounded
// worker pool. Each file is independent; a failure is recorded and the run
// continues unless FailFast is set. The returned error is non-nil iff the
// batch did not fully succeed.
func (o *operator) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(o.opts.Paths)).Int("jobs", o.opts.Jobs).Msg("starting batch")

	o.opts.Status.StartBatch(ctx, len(o.opts.Paths))

	var runErr error
	if o.opts.Jobs > 1 {
		runErr = o.runParallel(ctx)
	} else {
		runErr = o.runSequential(ctx)
	}

	o.opts.Status.Finish(ctx)

	if runErr != nil {
		return runErr
	}

	if _, _, failed := o.opts.Status.Summary(); failed > 0 {
		return errors.Errorf("%d of %d files failed", failed, len(o.opts.Paths))
	}
	return nil
}

// processFile rewrites one file and records its outcome. The returned error
// is only meaningful for fail-fast handling; the outcome is always tracked.
func (o *operator) processFile(ctx context.Context, path string) error {
	outcome, err := o.opts.Rewriter.RewriteFile(ctx, path)
	if err != nil {
		o.opts.Status.Track(ctx, status.FileInfo{
			Path:   path,
			Status: status.StatusFailed,
			Err:    err,
		})
		o.opts.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:     path,
			Status:   status.StatusFailed.String(),
			IsFailed: true,
		})
		o.opts.Logger.Errorf("%s: %v", path, err)
		return errors.Errorf("processing %s: %w", path, err)
	}

	st := status.StatusUnchanged
	switch {
	case outcome.Changed && outcome.DryRun:
		st = status.StatusSkipped
	case outcome.Changed:
		st = status.StatusRewritten
	}

	o.opts.Status.Track(ctx, status.FileInfo{
		Path:         path,
		Status:       st,
		Replacements: outcome.Replacements,
	})
	o.opts.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:         path,
		Status:       st.String(),
		IsRewritten:  st == status.StatusRewritten,
		IsDryRun:     st == status.StatusSkipped,
		Replacements: outcome.Replacements,
	})

	if outcome.Diff != "" {
		o.opts.Logger.LogBlock(outcome.Diff)
	}

	return nil
}
