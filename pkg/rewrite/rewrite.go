// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rewrite applies the fixed substitution rules to files on disk.
package rewrite

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/fixref/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Outcome describes what happened to one file.
type Outcome struct {
	Path         string // path as given on the command line
	Replacements int    // occurrences replaced
	Changed      bool   // whether the content differed after applying rules
	DryRun       bool   // whether the write was suppressed
	Diff         string // rendered diff, only populated in dry-run mode
}

// Options configures a Rewriter.
type Options struct {
	// Rules are the substitutions to apply. Required.
	Rules []text.Rule
	// DryRun renders a diff instead of writing anything.
	DryRun bool
}

// Rewriter rewrites files in place, one at a time.
type Rewriter struct {
	replacer *text.Replacer
	rules    []text.Rule
	dryRun   bool
}

// New creates a Rewriter after validating the rules.
func New(opts Options) (*Rewriter, error) {
	if len(opts.Rules) == 0 {
		return nil, errors.Errorf("at least one rule is required")
	}
	if err := text.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	return &Rewriter{
		replacer: text.NewReplacer(),
		rules:    opts.Rules,
		dryRun:   opts.DryRun,
	}, nil
}

// RewriteFile reads the file at path, applies the rules, and writes the
// result back over the same path. The destination is only replaced after the
// transformed content has been fully written to a uniquely named temp file in
// the same directory; an unchanged file is never touched.
func (rw *Rewriter) RewriteFile(ctx context.Context, path string) (*Outcome, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("stat %s: is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	result, err := rw.replacer.Replace(ctx, bytes.NewReader(content), rw.rules)
	if err != nil {
		return nil, errors.Errorf("replacing in %s: %w", path, err)
	}

	outcome := &Outcome{
		Path:         path,
		Replacements: result.ReplacementCount,
		Changed:      result.WasModified,
		DryRun:       rw.dryRun,
	}

	if !result.WasModified {
		logger.Debug().Str("path", path).Msg("no occurrences, leaving file untouched")
		return outcome, nil
	}

	if rw.dryRun {
		outcome.Diff = renderDiff(string(result.OriginalContent), string(result.ModifiedContent))
		logger.Debug().Str("path", path).Int("replacements", result.ReplacementCount).Msg("dry run, skipping write")
		return outcome, nil
	}

	if err := writeFileAtomic(path, result.ModifiedContent, info.Mode()); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("replacements", result.ReplacementCount).
		Msg("rewrote file")

	return outcome, nil
}

// writeFileAtomic writes content to a unique temp file next to path, then
// renames it over path. The original file survives any failure.
func writeFileAtomic(path string, content []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".fixref-*")
	if err != nil {
		return errors.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file for %s: %w", path, err)
	}

	// Carry over the original permissions; CreateTemp always uses 0600.
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting mode on temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file over %s: %w", path, err)
	}

	return nil
}
