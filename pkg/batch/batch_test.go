package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fixref/pkg/log"
	"github.com/walteh/fixref/pkg/rewrite"
	"github.com/walteh/fixref/pkg/status"
	"github.com/walteh/fixref/pkg/text"
)

const (
	noteLine  = " Note: Diff(up-dn) is a rough approximation of local magnetic moment\n"
	fixedLine = " Radius=ratsph(iatom), smearing ratsm=  0.0000. Diff(up-dn)=approximate z local magnetic moment.\n"
)

type testEnv struct {
	dir     string
	status  *status.Manager
	logger  *log.Logger
	console *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	nop := zerolog.Nop()
	console := &bytes.Buffer{}
	return &testEnv{
		dir:     t.TempDir(),
		status:  status.New(&nop),
		logger:  log.New(console, zerolog.Disabled),
		console: console,
	}
}

func (e *testEnv) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (e *testEnv) operator(t *testing.T, paths []string, failFast bool, jobs int, dryRun bool) Operator {
	t.Helper()
	rw, err := rewrite.New(rewrite.Options{
		Rules:  []text.Rule{text.MomentNoteRule()},
		DryRun: dryRun,
	})
	require.NoError(t, err)

	op, err := New(Options{
		Paths:    paths,
		Rewriter: rw,
		Status:   e.status,
		Logger:   e.logger,
		FailFast: failFast,
		Jobs:     jobs,
	})
	require.NoError(t, err)
	return op
}

func TestNew_Validation(t *testing.T) {
	env := newTestEnv(t)
	rw, err := rewrite.New(rewrite.Options{Rules: []text.Rule{text.MomentNoteRule()}})
	require.NoError(t, err)

	tests := []struct {
		name      string
		opts      Options
		wantError string
	}{
		{
			name:      "missing_paths",
			opts:      Options{Rewriter: rw, Status: env.status, Logger: env.logger},
			wantError: "at least one file path",
		},
		{
			name:      "missing_rewriter",
			opts:      Options{Paths: []string{"a"}, Status: env.status, Logger: env.logger},
			wantError: "rewriter is required",
		},
		{
			name:      "missing_status",
			opts:      Options{Paths: []string{"a"}, Rewriter: rw, Logger: env.logger},
			wantError: "status manager is required",
		},
		{
			name:      "missing_logger",
			opts:      Options{Paths: []string{"a"}, Rewriter: rw, Status: env.status},
			wantError: "logger is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestRun_Sequential(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a := env.file(t, "a.abo", "header\n"+noteLine)
	b := env.file(t, "b.abo", "no note here\n")

	op := env.operator(t, []string{a, b}, false, 1, false)
	require.NoError(t, op.Run(ctx))

	list := env.status.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, status.StatusRewritten, list[0].Status)
	assert.Equal(t, 1, list[0].Replacements)
	assert.Equal(t, status.StatusUnchanged, list[1].Status)

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "header\n"+fixedLine, string(got))
}

func TestRun_ContinuesPastFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	missing := filepath.Join(env.dir, "missing.abo")
	good := env.file(t, "good.abo", noteLine)

	op := env.operator(t, []string{missing, good}, false, 1, false)
	err := op.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")

	// the failure must not have stopped the good file from being rewritten
	got, readErr := os.ReadFile(good)
	require.NoError(t, readErr)
	assert.Equal(t, fixedLine, string(got))

	info, getErr := env.status.Get(ctx, missing)
	require.NoError(t, getErr)
	assert.Equal(t, status.StatusFailed, info.Status)
	require.Error(t, info.Err)
}

func TestRun_FailFast(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	missing := filepath.Join(env.dir, "missing.abo")
	good := env.file(t, "good.abo", noteLine)

	op := env.operator(t, []string{missing, good}, true, 1, false)
	err := op.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.abo")

	// the second file was never processed
	got, readErr := os.ReadFile(good)
	require.NoError(t, readErr)
	assert.Equal(t, noteLine, string(got))

	_, getErr := env.status.Get(ctx, good)
	require.Error(t, getErr)
}

func TestRun_Parallel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	paths := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		name := string(rune('a'+i)) + ".abo"
		paths = append(paths, env.file(t, name, "line\n"+noteLine+"line\n"))
	}

	op := env.operator(t, paths, false, 4, false)
	require.NoError(t, op.Run(ctx))

	rewritten, unchanged, failed := env.status.Summary()
	assert.Equal(t, 8, rewritten)
	assert.Equal(t, 0, unchanged)
	assert.Equal(t, 0, failed)

	for _, path := range paths {
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "line\n"+fixedLine+"line\n", string(got))
	}
}

func TestRun_DryRun(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	content := "x\n" + noteLine
	a := env.file(t, "a.abo", content)

	op := env.operator(t, []string{a}, false, 1, true)
	require.NoError(t, op.Run(ctx))

	info, err := env.status.Get(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, status.StatusSkipped, info.Status)
	assert.Equal(t, 1, info.Replacements)

	// diff printed, file untouched
	assert.Contains(t, env.console.String(), "rough approximation")
	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestRun_CancelledContext(t *testing.T) {
	env := newTestEnv(t)
	a := env.file(t, "a.abo", noteLine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := env.operator(t, []string{a}, false, 1, false)
	err := op.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")

	got, readErr := os.ReadFile(a)
	require.NoError(t, readErr)
	assert.Equal(t, noteLine, string(got))
}
