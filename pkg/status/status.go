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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the outcome of processing one file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusPending              // File is queued but not processed yet
	StatusRewritten            // File contained the pattern and was rewritten
	StatusUnchanged            // File contained no occurrences
	StatusFailed               // File could not be read or written
	StatusSkipped              // File was matched but not written (dry run)
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRewritten:
		return "rewritten"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains the per-file result of a batch run
type FileInfo struct {
	Path         string     // Path as given on the command line
	Status       FileStatus // Outcome for this file
	Replacements int        // Occurrences replaced (or that would be, in dry run)
	Err          error      // Failure cause, only set for StatusFailed
}

// 🔧 Manager tracks per-file outcomes for one batch run
type Manager struct {
	logger    *zerolog.Logger
	formatter FileFormatter

	mu    sync.RWMutex
	files map[string]FileInfo
	order []string // paths in the order they were first tracked

	total int
}

// 🏭 New creates a new status manager
func New(logger *zerolog.Logger) *Manager {
	return &Manager{
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// 📍 StartBatch resets tracking for a run over total files
func (m *Manager) StartBatch(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.files = make(map[string]FileInfo, total)
	m.order = m.order[:0]

	m.logger.Info().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

// 📝 Track records the outcome for one file
func (m *Manager) Track(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, seen := m.files[info.Path]; !seen {
		m.order = append(m.order, info.Path)
	}
	m.files[info.Path] = info

	msg := m.formatter.FormatFileOperation(info.Path, info.Status, info.Replacements)
	if info.Err != nil {
		msg = m.formatter.FormatError(info.Err)
	}
	m.logger.Info().
		Str("path", info.Path).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Msg(msg)
}

// 🔍 Get returns the tracked info for a path
func (m *Manager) Get(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// 📋 List returns all tracked files in the order they were processed
func (m *Manager) List(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.order))
	for _, path := range m.order {
		files = append(files, m.files[path])
	}
	return files
}

// 📈 Summary returns aggregate counts for the run
func (m *Manager) Summary() (rewritten, unchanged, failed int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, info := range m.files {
		switch info.Status {
		case StatusRewritten, StatusSkipped:
			rewritten++
		case StatusUnchanged:
			unchanged++
		case StatusFailed:
			failed++
		}
	}
	return rewritten, unchanged, failed
}

// ✅ Finish logs the completed batch
func (m *Manager) Finish(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.logger.Info().
		Int("processed", len(m.files)).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(len(m.files), m.total))
}
