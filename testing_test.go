package snapfile_test

import (
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/snapfile"
	"go.inout.gg/snapfile/internal/testutil"
)

// fakeTB records failures instead of failing the running test.
type fakeTB struct {
	testing.TB

	name     string
	cleanups []func()
	errors   []string
	fatals   []string
	failed   bool
}

func newFakeTB(name string) *fakeTB {
	return &fakeTB{name: name} //nolint:exhaustruct
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Name() string { return f.name }

func (f *fakeTB) Cleanup(fn func()) { f.cleanups = append(f.cleanups, fn) }

func (f *fakeTB) Failed() bool { return f.failed }

func (f *fakeTB) Error(args ...any) {
	f.failed = true
	f.errors = append(f.errors, fmt.Sprint(args...))
}

func (f *fakeTB) Errorf(format string, args ...any) { f.Error(fmt.Sprintf(format, args...)) }

func (f *fakeTB) Fatal(args ...any) {
	f.failed = true
	f.fatals = append(f.fatals, fmt.Sprint(args...))
}

func (f *fakeTB) Fatalf(format string, args ...any) { f.Fatal(fmt.Sprintf(format, args...)) }

func (f *fakeTB) finish() {
	for i := len(f.cleanups) - 1; i >= 0; i-- {
		f.cleanups[i]()
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("should pass, when values match snapshots", func(t *testing.T) {
		t.Parallel()

		fs, _, dir := testutil.NewSnapshotDirBuilder(t).
			WithTextFile("a.txt", "a\n").
			WithTextFile("d/b.txt", "b").
			Build()
		tb := newFakeTB("TestRender")

		snap := snapfile.New(tb, snapfile.WithFs(fs), snapfile.WithDir(dir), snapfile.WithLogger(discardLogger),
			snapfile.WithUpdate(false))
		snap.AssertMatch("a\n", "a.txt")
		snap.AssertMatchDir(snapfile.Dir{"b.txt": "b"}, "d")
		tb.finish()

		assert.False(t, tb.Failed())
	})

	t.Run("should fail immediately, when value does not match", func(t *testing.T) {
		t.Parallel()

		fs, _, dir := testutil.NewSnapshotDirBuilder(t).WithTextFile("a.txt", "a\n").Build()
		tb := newFakeTB("TestRender")

		snap := snapfile.New(tb, snapfile.WithFs(fs), snapfile.WithDir(dir), snapfile.WithLogger(discardLogger),
			snapfile.WithUpdate(false))
		snap.AssertMatch("b\n", "a.txt")
		snap.AssertMatchDir(snapfile.Dir{"x.txt": "x"}, "d")
		tb.finish()

		require.Len(t, tb.fatals, 2)
		assert.Contains(t, tb.fatals[0], "value does not match the expected value in snapshot")
		assert.Contains(t, tb.fatals[1], "Values do not match snapshots in")
		assert.Empty(t, tb.errors)
	})

	t.Run("should report mutations at cleanup, when update mode writes snapshots", func(t *testing.T) {
		t.Parallel()

		fs, _, dir := testutil.NewSnapshotDirBuilder(t).Build()
		tb := newFakeTB("TestRender")

		snap := snapfile.New(tb, snapfile.WithFs(fs), snapfile.WithDir(dir), snapfile.WithLogger(discardLogger),
			snapfile.WithUpdate(true))
		snap.AssertMatch("a\n", "a.txt")

		assert.False(t, tb.Failed())

		tb.finish()

		require.Len(t, tb.errors, 1)
		assert.Contains(t, tb.errors[0], "Snapshot directory was modified: "+dir)
		assert.Contains(t, tb.errors[0], "Created snapshots:\n    a.txt")
		testutil.SnapshotFS(t, fs, dir)
	})

	t.Run("should skip report and deletions, when test already failed", func(t *testing.T) {
		t.Parallel()

		fs, _, dir := testutil.NewSnapshotDirBuilder(t).WithTextFile("d/stale.txt", "stale").Build()
		tb := newFakeTB("TestRender")

		snap := snapfile.New(tb, snapfile.WithFs(fs), snapfile.WithDir(dir), snapfile.WithLogger(discardLogger),
			snapfile.WithUpdate(true), snapfile.WithAllowDeletion(true))
		snap.AssertMatchDir(snapfile.Dir{}, "d")
		tb.failed = true
		tb.finish()

		assert.Empty(t, tb.errors)

		exists, err := afero.Exists(fs, filepath.Join(dir, "d", "stale.txt"))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("should use dir func, when directory is not set", func(t *testing.T) {
		t.Parallel()

		tb := newFakeTB("TestRender/case_1")

		snap := snapfile.New(tb,
			snapfile.WithFs(afero.NewMemMapFs()),
			snapfile.WithLogger(discardLogger),
			snapfile.WithDirFunc(func(tb testing.TB) string {
				return filepath.Join(string(filepath.Separator)+"snaps", tb.Name())
			}),
		)

		dir, err := snap.Dir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(string(filepath.Separator)+"snaps", "TestRender", "case_1"), dir)
	})

	t.Run("should derive directory from calling file, when nothing is configured", func(t *testing.T) {
		t.Parallel()

		_, file, _, ok := runtime.Caller(0)
		require.True(t, ok)

		tb := newFakeTB("TestRender/case_1")
		snap := snapfile.New(tb, snapfile.WithFs(afero.NewMemMapFs()), snapfile.WithLogger(discardLogger))

		expected, err := filepath.Abs(snapfile.DefaultDir(file, tb.Name()))
		require.NoError(t, err)

		dir, err := snap.Dir()
		require.NoError(t, err)
		assert.Equal(t, expected, dir)
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Run("should enable update mode, when environment variable is set", func(t *testing.T) {
		t.Setenv(snapfile.UpdateEnv, "true")

		tb := newFakeTB("TestRender")
		snap := snapfile.New(tb, snapfile.WithFs(afero.NewMemMapFs()), snapfile.WithDir("/snaps"))

		assert.True(t, snap.Update())
	})

	t.Run("should let options win, when environment variable is set", func(t *testing.T) {
		t.Setenv(snapfile.UpdateEnv, "1")

		tb := newFakeTB("TestRender")
		snap := snapfile.New(tb, snapfile.WithFs(afero.NewMemMapFs()), snapfile.WithDir("/snaps"),
			snapfile.WithUpdate(false))

		assert.False(t, snap.Update())
	})

	t.Run("should ignore value, when environment variable is not a boolean", func(t *testing.T) {
		t.Setenv(snapfile.UpdateEnv, "maybe")

		tb := newFakeTB("TestRender")
		snap := snapfile.New(tb, snapfile.WithFs(afero.NewMemMapFs()), snapfile.WithDir("/snaps"))

		assert.False(t, snap.Update())
	})
}

func TestDefaultDir(t *testing.T) {
	t.Parallel()

	root := string(filepath.Separator)

	tests := []struct {
		name     string
		file     string
		testName string
		expected string
	}{
		{
			name:     "top level test",
			file:     filepath.Join(root, "src", "pkg", "render_test.go"),
			testName: "TestRender",
			expected: filepath.Join(root, "src", "pkg", "snapshots", "render", "TestRender"),
		},
		{
			name:     "subtests",
			file:     filepath.Join(root, "src", "pkg", "render_test.go"),
			testName: "TestRender/should_render,_when_empty/#01",
			expected: filepath.Join(root, "src", "pkg", "snapshots", "render", "TestRender", "should_render_when_empty", "01"),
		},
		{
			name:     "trimmed path",
			file:     "example.com/pkg/render_test.go",
			testName: "TestRender",
			expected: filepath.Join("snapshots", "render", "TestRender"),
		},
		{
			name:     "unusable subtest name",
			file:     filepath.Join(root, "src", "render_test.go"),
			testName: "TestRender/..",
			expected: filepath.Join(root, "src", "snapshots", "render", "TestRender", "dotdot"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, snapfile.DefaultDir(tt.file, tt.testName))
		})
	}
}
