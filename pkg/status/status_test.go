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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func TestManager_FileOperations(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		check func(t *testing.T, ctx context.Context, mgr *Manager, dir string)
	}{
		{
			name: "read_write_roundtrip",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "alpha"), 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha", "index.html"), []byte("<body>"), 0o644))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				content, err := mgr.ReadFile(ctx, filepath.Join("alpha", "index.html"))
				require.NoError(t, err)
				assert.Equal(t, "<body>", string(content))

				require.NoError(t, mgr.WriteFile(ctx, filepath.Join("alpha", "index.html"), []byte("<body class=\"project-page\">")))

				content, err = os.ReadFile(filepath.Join(dir, "alpha", "index.html"))
				require.NoError(t, err)
				assert.Equal(t, "<body class=\"project-page\">", string(content))

				entries, err := os.ReadDir(filepath.Join(dir, "alpha"))
				require.NoError(t, err)
				assert.Len(t, entries, 1, "overwrite should not leave backups or temp files")
			},
		},
		{
			name: "write_keeps_permissions",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("x"), 0o600))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				require.NoError(t, mgr.WriteFile(ctx, "index.html", []byte("y")))

				fi, err := os.Stat(filepath.Join(dir, "index.html"))
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
			},
		},
		{
			name: "file_exists",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir-index", "index.html"), 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("x"), 0o644))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				assert.True(t, mgr.FileExists(ctx, "index.html"))
				assert.False(t, mgr.FileExists(ctx, "missing.html"))
				assert.False(t, mgr.FileExists(ctx, filepath.Join("dir-index", "index.html")), "a directory is not an index file")
			},
		},
		{
			name: "file_exists_symlink_loop",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "beta"), 0o755))
				loop := filepath.Join(dir, "beta", "index.html")
				require.NoError(t, os.Symlink(loop, loop))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				assert.False(t, mgr.FileExists(ctx, filepath.Join("beta", "index.html")), "an unresolvable link counts as missing")
			},
		},
		{
			name: "list_dirs_sorted_and_filtered",
			setup: func(t *testing.T, dir string) {
				for _, d := range []string{"zeta", "alpha", "mid"} {
					require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0o755))
				}
				require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				dirs, err := mgr.ListDirs(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"alpha", "mid", "zeta"}, dirs)
			},
		},
		{
			name: "read_missing_file",
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				_, err := mgr.ReadFile(ctx, "nope.html")
				require.Error(t, err)
				assert.Contains(t, err.Error(), "reading file")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			mgr := NewManager(dir, nil)
			tt.check(t, testContext(t), mgr, dir)
		})
	}
}

func TestManager_ListDirsMissingRoot(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "proyectos"), nil)

	_, err := mgr.ListDirs(testContext(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "expected not-exist error, got %v", err)
}

func TestManager_ListDirsFollowsLinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "shared")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "alpha"), 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	dirs, err := NewManager(dir, nil).ListDirs(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "linked"}, dirs)
}

func TestManager_Tracking(t *testing.T) {
	ctx := testContext(t)
	mgr := NewManager(t.TempDir(), NewDefaultFileFormatter())

	mgr.TrackFile(ctx, "b/index.html", FileInfo{Status: StatusUpdated, Replacements: 3})
	mgr.TrackFile(ctx, "a/index.html", FileInfo{Status: StatusUnchanged})
	mgr.TrackFile(ctx, "c/index.html", FileInfo{Status: StatusSkipped})
	mgr.TrackFile(ctx, "d/index.html", FileInfo{Status: StatusPending, Replacements: 2})

	files, err := mgr.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 4)
	assert.Equal(t, "b/index.html", files[0].Path, "tracking order should be kept")
	assert.Equal(t, StatusUpdated, files[0].Status)
	assert.Equal(t, "d/index.html", files[3].Path)

	summary := mgr.Summary(ctx)
	assert.Equal(t, Summary{Updated: 1, Unchanged: 1, Skipped: 1, Pending: 1, Replacements: 5}, summary)
	assert.Equal(t, 3, summary.Total())
}

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "updated", StatusUpdated.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

func TestDefaultFileFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	assert.Equal(t, "📝 Updated a/index.html [2]", f.FormatFileOperation(FileInfo{Path: "a/index.html", Status: StatusUpdated, Replacements: 2}))
	assert.Equal(t, "👍 Unchanged a/index.html", f.FormatFileOperation(FileInfo{Path: "a/index.html", Status: StatusUnchanged}))
	assert.Equal(t, "⏭️  Skipped b/index.html", f.FormatFileOperation(FileInfo{Path: "b/index.html", Status: StatusSkipped}))
}
