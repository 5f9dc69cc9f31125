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
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// FileStatus represents what a run did to a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUpdated              // Content changed and was written back
	StatusUnchanged            // Written back, no rule matched
	StatusSkipped              // Project has no index file
	StatusPending              // Would change, nothing written (dry run)
)

func (s FileStatus) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	case StatusPending:
		return "pending"
	default:
		return "unknown"
	}
}

// FileInfo contains information about a processed file
type FileInfo struct {
	Path         string     // Path relative to the projects directory
	Status       FileStatus // What happened to the file
	Replacements int        // Number of occurrences replaced
	Size         int64      // Size of the content written (or that would be)
}

// FileManager handles file system operations inside the projects directory
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte) error
	FileExists(ctx context.Context, path string) bool
	ListDirs(ctx context.Context) ([]string, error)
}

// StatusReporter records per-file outcomes of a run
type StatusReporter interface {
	TrackFile(ctx context.Context, path string, info FileInfo)
	ListFiles(ctx context.Context) ([]FileInfo, error)
	Summary(ctx context.Context) Summary
}

var (
	_ FileManager    = (*Manager)(nil)
	_ StatusReporter = (*Manager)(nil)
)

// Manager implements FileManager and StatusReporter on the local file system
type Manager struct {
	baseDir   string
	formatter FileFormatter

	mu    sync.RWMutex
	files map[string]FileInfo
	order []string
}

// NewManager creates a Manager rooted at baseDir
func NewManager(baseDir string, formatter FileFormatter) *Manager {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		formatter: formatter,
		files:     make(map[string]FileInfo),
	}
}

func (m *Manager) getAbsPath(path string) string {
	return filepath.Join(m.baseDir, path)
}

// ListDirs returns the names of the immediate subdirectories of the base
// directory, sorted by name. A missing base directory is an error.
func (m *Manager) ListDirs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", m.baseDir, err)
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			// follow links to project directories
			if fi, err := os.Stat(m.getAbsPath(entry.Name())); err == nil {
				isDir = fi.IsDir()
			}
		}
		if isDir {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}

// ReadFile reads the whole file
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFile overwrites the file in place with content, keeping its
// permission bits. There is no backup and no temp file.
func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(absPath); err == nil {
		mode = fi.Mode().Perm()
	}

	if err := os.WriteFile(absPath, content, mode); err != nil {
		return errors.Errorf("writing file: %w", err)
	}
	return nil
}

// FileExists reports whether path is an existing file. A directory, a
// missing path or one that cannot be stat'ed (symlink loop, permissions)
// all report false.
func (m *Manager) FileExists(ctx context.Context, path string) bool {
	fi, err := os.Stat(m.getAbsPath(path))
	if err != nil {
		if !os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("treating unreadable path as missing")
		}
		return false
	}
	return !fi.IsDir()
}

// TrackFile records the outcome for path
func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info.Path = path
	if _, ok := m.files[path]; !ok {
		m.order = append(m.order, path)
	}
	m.files[path] = info

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Msg(m.formatter.FormatFileOperation(info))
}

// ListFiles returns every tracked file in the order it was first tracked
func (m *Manager) ListFiles(ctx context.Context) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.order))
	for _, path := range m.order {
		files = append(files, m.files[path])
	}
	return files, nil
}

// Summary counts tracked files by status
type Summary struct {
	Updated      int
	Unchanged    int
	Skipped      int
	Pending      int
	Replacements int
}

// Total is the number of index files that were found
func (s Summary) Total() int {
	return s.Updated + s.Unchanged + s.Pending
}

// Summary aggregates the tracked files
func (m *Manager) Summary(ctx context.Context) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Summary
	for _, info := range m.files {
		switch info.Status {
		case StatusUpdated:
			s.Updated++
		case StatusUnchanged:
			s.Unchanged++
		case StatusSkipped:
			s.Skipped++
		case StatusPending:
			s.Pending++
		}
		s.Replacements += info.Replacements
	}
	return s
}
