package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/fixref/pkg/batch"
	"github.com/walteh/fixref/pkg/log"
	"github.com/walteh/fixref/pkg/rewrite"
	"github.com/walteh/fixref/pkg/status"
	"github.com/walteh/fixref/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the command-line flags. The substitution itself takes no
// options: the pattern pair is fixed.
type rootFlags struct {
	debug    bool
	dryRun   bool
	failFast bool
	jobs     int
}

// newRootCmd creates the fixref root command
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "fixref FILE...",
		Short: "Update the magnetic-moment note line in reference output files",
		Long: `fixref rewrites reference output files in place, replacing the old
magnetic-moment note line with the wording emitted by current builds.
The search and replacement strings are fixed; only the file list varies.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "print diffs instead of writing files")
	cmd.Flags().BoolVar(&flags.failFast, "fail-fast", false, "abort the batch on the first failing file")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1, "number of files to process at once")

	return cmd
}

// run wires the logger, rewriter, status manager, and batch operator together
// and executes the batch.
func run(ctx context.Context, console io.Writer, flags *rootFlags, args []string) error {
	zlevel := zerolog.WarnLevel
	loglevel := zerolog.InfoLevel
	if flags.debug {
		zlevel = zerolog.DebugLevel
		loglevel = zerolog.DebugLevel
	}

	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(zlevel)
	ctx = zlog.WithContext(ctx)

	logger := log.New(console, loglevel)
	ctx = log.NewContext(ctx, logger)

	feedback := newUserFeedback(ctx)

	paths := expandArgs(ctx, args)

	rewriter, err := rewrite.New(rewrite.Options{
		Rules:  []text.Rule{text.MomentNoteRule()},
		DryRun: flags.dryRun,
	})
	if err != nil {
		feedback.Failure("Failed to initialize", err)
		return err
	}

	statusMgr := status.New(&zlog)

	op, err := batch.New(batch.Options{
		Paths:    paths,
		Rewriter: rewriter,
		Status:   statusMgr,
		Logger:   logger,
		FailFast: flags.failFast,
		Jobs:     flags.jobs,
	})
	if err != nil {
		feedback.Failure("Failed to initialize", err)
		return err
	}

	logger.Header("updating magnetic-moment note lines")

	runErr := op.Run(ctx)

	rewritten, unchanged, failed := statusMgr.Summary()
	feedback.Summary(rewritten, unchanged, failed, flags.dryRun)

	if runErr != nil {
		return errors.Errorf("running batch: %w", runErr)
	}
	return nil
}

// expandArgs expands glob patterns that reached us unexpanded (quoted, or no
// shell). A pattern matching nothing is kept verbatim so it surfaces as a
// failed path instead of vanishing silently.
func expandArgs(ctx context.Context, args []string) []string {
	logger := zerolog.Ctx(ctx)

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil || len(matches) == 0 {
			logger.Debug().Str("pattern", arg).Err(err).Msg("glob matched nothing, keeping literal path")
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}
