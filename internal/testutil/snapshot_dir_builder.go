package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"go.inout.gg/snapfile/pkg/codec"
)

// SnapshotDirBuilder prepares an in-memory filesystem holding a snapshot
// directory at /testdir/snapshots.
type SnapshotDirBuilder struct {
	fs         afero.Fs
	openErrs   map[string]error
	removeErrs map[string]error
	t          *testing.T
	baseDir    string
	dir        string
}

func NewSnapshotDirBuilder(t *testing.T) *SnapshotDirBuilder {
	t.Helper()

	fs := afero.NewMemMapFs()
	baseDir := filepath.FromSlash("/testdir")
	dir := filepath.Join(baseDir, "snapshots")
	require.NoError(t, fs.MkdirAll(dir, 0o755))

	return &SnapshotDirBuilder{
		t:          t,
		fs:         fs,
		baseDir:    baseDir,
		dir:        dir,
		openErrs:   make(map[string]error),
		removeErrs: make(map[string]error),
	}
}

// WithFile writes content verbatim to the slash-separated name below the
// snapshot directory.
func (b *SnapshotDirBuilder) WithFile(name, content string) *SnapshotDirBuilder {
	b.t.Helper()
	b.write(filepath.Join(b.dir, filepath.FromSlash(name)), []byte(content))

	return b
}

// WithTextFile writes content the way a text snapshot is stored.
func (b *SnapshotDirBuilder) WithTextFile(name, content string) *SnapshotDirBuilder {
	b.t.Helper()
	b.write(
		filepath.Join(b.dir, filepath.FromSlash(name)),
		[]byte(strings.ReplaceAll(content, "\n", codec.LineSeparator)),
	)

	return b
}

func (b *SnapshotDirBuilder) WithBaseFile(name, content string) *SnapshotDirBuilder {
	b.t.Helper()
	b.write(filepath.Join(b.baseDir, filepath.FromSlash(name)), []byte(content))

	return b
}

func (b *SnapshotDirBuilder) WithSubdir(name string) *SnapshotDirBuilder {
	b.t.Helper()
	require.NoError(b.t, b.fs.MkdirAll(filepath.Join(b.dir, filepath.FromSlash(name)), 0o755))

	return b
}

func (b *SnapshotDirBuilder) WithReadError(file string, err error) *SnapshotDirBuilder {
	b.t.Helper()
	b.openErrs[filepath.Join(b.dir, filepath.FromSlash(file))] = err

	return b
}

func (b *SnapshotDirBuilder) WithRemoveError(file string, err error) *SnapshotDirBuilder {
	b.t.Helper()
	b.removeErrs[filepath.Join(b.dir, filepath.FromSlash(file))] = err

	return b
}

// Build returns the filesystem, the base directory and the snapshot directory.
func (b *SnapshotDirBuilder) Build() (afero.Fs, string, string) {
	b.t.Helper()

	fs := b.fs
	if len(b.openErrs) > 0 || len(b.removeErrs) > 0 {
		fs = &faultyFs{
			Fs:         b.fs,
			openErrs:   b.openErrs,
			removeErrs: b.removeErrs,
		}
	}

	return fs, b.baseDir, b.dir
}

func (b *SnapshotDirBuilder) write(path string, data []byte) {
	b.t.Helper()
	require.NoError(b.t, b.fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(b.t, afero.WriteFile(b.fs, path, data, 0o644))
}

type faultyFs struct {
	afero.Fs

	openErrs   map[string]error
	removeErrs map[string]error
}

func (f *faultyFs) Open(name string) (afero.File, error) {
	if err, ok := f.openErrs[name]; ok {
		return nil, err
	}

	//nolint:wrapcheck
	return f.Fs.Open(name)
}

func (f *faultyFs) Remove(name string) error {
	if err, ok := f.removeErrs[name]; ok {
		return err
	}

	//nolint:wrapcheck
	return f.Fs.Remove(name)
}
