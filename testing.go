package snapfile

import (
	"flag"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.inout.gg/snapfile/pkg/pathsafe"
)

//nolint:gochecknoglobals
var (
	updateFlag        = flag.Bool(UpdateFlag, false, "update snapshots")
	allowDeletionFlag = flag.Bool(AllowDeletionFlag, false, "allow -"+UpdateFlag+" to delete snapshots without a value")
)

// Snapshot is a Session bound to a test.
type Snapshot struct {
	*Session

	tb testing.TB
}

// New creates a Snapshot for tb.
//
// Update mode and deletion are enabled by the -snapshot-update and
// -allow-snapshot-deletion flags or the SNAPFILE_UPDATE and
// SNAPFILE_ALLOW_DELETION environment variables; opts are applied on top.
//
// Unless a directory is configured, the snapshot directory is derived with
// Config.DirFunc, or with DefaultDir from the file calling New.
//
// When the test ends without failing, the session is closed and any change to
// the snapshot directory fails the test. When the test has already failed,
// the report is skipped and files marked for deletion are kept; files that
// were already written stay on disk.
func New(tb testing.TB, opts ...Option) *Snapshot {
	tb.Helper()

	_, file, _, hasCaller := runtime.Caller(1)

	config := NewConfig(append([]Option{
		WithUpdate(*updateFlag || envBool(UpdateEnv)),
		WithAllowDeletion(*allowDeletionFlag || envBool(AllowDeletionEnv)),
	}, opts...)...)

	s, err := NewSession(config)
	if err != nil {
		tb.Fatal(err)
	}

	if config.Dir == "" {
		dirFunc := config.DirFunc
		if dirFunc == nil && hasCaller {
			dirFunc = func(tb testing.TB) string { return DefaultDir(file, tb.Name()) }
		}

		if dirFunc != nil {
			if err := s.SetDir(dirFunc(tb)); err != nil {
				tb.Fatal(err)
			}
		}
	}

	tb.Cleanup(func() {
		if tb.Failed() {
			return
		}

		if err := s.Close(); err != nil {
			tb.Error(err)
		}
	})

	return &Snapshot{Session: s, tb: tb}
}

// AssertMatch fails the test unless value matches the snapshot name.
// See Session.Match.
func (s *Snapshot) AssertMatch(value any, name string) {
	s.tb.Helper()

	if err := s.Match(value, name); err != nil {
		s.tb.Fatal(err)
	}
}

// AssertMatchDir fails the test unless tree matches the snapshot directory
// name. See Session.MatchDir.
func (s *Snapshot) AssertMatchDir(tree any, name string) {
	s.tb.Helper()

	if err := s.MatchDir(tree, name); err != nil {
		s.tb.Fatal(err)
	}
}

// DefaultDir returns the default snapshot directory of the test testName
// declared in testFile:
//
//	<dir of testFile>/snapshots/<testFile without _test.go>/<test>[/<subtest>...]
//
// Subtest names are sanitized with pathsafe.SanitizeFilename. A testFile that
// is not absolute (e.g. built with -trimpath) is taken as relative to the
// working directory, which go test sets to the package directory.
func DefaultDir(testFile, testName string) string {
	if !filepath.IsAbs(testFile) {
		testFile = filepath.Base(testFile)
	}

	module := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(testFile), ".go"), "_test")
	parts := strings.Split(testName, "/")

	elems := []string{filepath.Dir(testFile), "snapshots", module, parts[0]}
	for _, p := range parts[1:] {
		elems = append(elems, pathsafe.SanitizeFilename(p))
	}

	return filepath.Join(elems...)
}
