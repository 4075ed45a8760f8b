package snapfile

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"go.inout.gg/foundations/debug"

	"go.inout.gg/snapfile/internal/sliceutil"
	"go.inout.gg/snapfile/pkg/codec"
	"go.inout.gg/snapfile/pkg/pathsafe"
	"go.inout.gg/snapfile/pkg/snapdiff"
	"go.inout.gg/snapfile/pkg/snaptree"
)

type mutation uint8

const (
	mutationCreated mutation = iota + 1
	mutationUpdated
	mutationToDelete
)

// Session compares values with snapshot files and keeps track of the
// snapshot files it changed.
//
// A Session belongs to a single test and is not safe for concurrent use.
// Close must be called once the test is done; see New for a Session bound to
// a testing.TB.
type Session struct {
	fs        afero.Fs
	logger    *slog.Logger
	recorded  map[string]mutation
	dir       string
	diffOrder snapdiff.Order

	created  []string
	updated  []string
	toDelete []string

	update        bool
	allowDeletion bool
}

// NewSession creates a new session with the given config.
func NewSession(config *Config) (*Session, error) {
	debug.Assert(config.Fs != nil, "config.Fs must be defined")
	debug.Assert(config.Logger != nil, "config.Logger must be defined")

	//nolint:exhaustruct
	s := &Session{
		fs:            config.Fs,
		logger:        config.Logger,
		recorded:      make(map[string]mutation),
		diffOrder:     config.DiffOrder,
		update:        config.Update,
		allowDeletion: config.AllowDeletion,
	}

	if config.Dir != "" {
		if err := s.SetDir(config.Dir); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SetDir sets the snapshot directory. A relative dir is resolved against
// the working directory.
func (s *Session) SetDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("snapfile: failed to resolve snapshot directory %s: %w", dir, err)
	}

	s.dir = abs

	return nil
}

// Dir returns the snapshot directory.
func (s *Session) Dir() (string, error) {
	if s.dir == "" {
		return "", ErrRootNotSet
	}

	return s.dir, nil
}

// Update reports whether the session runs in update mode.
func (s *Session) Update() bool { return s.update }

// Match asserts that value equals the content of the snapshot name.
//
// The value must be a string, a []byte or a Value. The name is relative to
// the snapshot directory, or an absolute path inside it.
//
// In update mode the snapshot is created or rewritten instead, and the change
// is reported by Close.
func (s *Session) Match(value any, name string) error {
	v, err := codec.Of(value)
	if err != nil {
		//nolint:wrapcheck
		return err
	}

	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	prior, exists, err := s.read(path)
	if err != nil {
		return err
	}

	if s.update {
		return s.write(v, path, prior, exists)
	}

	if !exists {
		return fmt.Errorf(
			"%w: snapshot %s doesn't exist. (run with -%s to create it)",
			ErrSnapshotMissing,
			pathsafe.Shorten(path),
			UpdateFlag,
		)
	}

	expected, err := codec.Decode(v.Kind(), prior)
	if err != nil {
		//nolint:wrapcheck
		return err
	}

	if !v.Equal(expected) {
		return &MismatchError{Path: path, Diff: snapdiff.Diff(v, expected, s.diffOrder)}
	}

	return nil
}

// MatchDir asserts that tree matches the snapshot directory name.
//
// The tree is a nested mapping, see snaptree.Flatten. Its paths must match
// the files present below the directory, and every value must match its file
// as in Match. A directory that does not exist holds no files.
//
// In update mode files without a value are marked for deletion, see Close.
func (s *Session) MatchDir(tree any, name string) error {
	desired, err := snaptree.Flatten(tree)
	if err != nil {
		//nolint:wrapcheck
		return err
	}

	dir, err := s.resolve(name)
	if err != nil {
		return err
	}

	existing, err := s.existing(dir)
	if err != nil {
		return err
	}

	paths := slices.Sorted(maps.Keys(desired))
	added := sliceutil.Difference(paths, sliceutil.Set(existing))
	removed := sliceutil.Difference(existing, desired)

	if !s.update && (len(added) > 0 || len(removed) > 0) {
		return &DirMismatchError{
			Dir:                    dir,
			ValuesWithoutSnapshots: added,
			SnapshotsWithoutValues: removed,
		}
	}

	if s.update {
		for _, p := range removed {
			s.queueDeletion(filepath.Join(dir, filepath.FromSlash(p)))
		}
	}

	for _, p := range paths {
		if err := s.Match(desired[p], filepath.Join(dir, filepath.FromSlash(p))); err != nil {
			return err
		}
	}

	return nil
}

// Close ends the session.
//
// Files marked for deletion are removed if deletion is allowed. If any
// snapshot was created, updated or marked for deletion, Close returns a
// *MutationError listing them. The session is empty afterwards.
func (s *Session) Close() error {
	defer s.reset()

	if s.allowDeletion {
		for _, path := range s.toDelete {
			if err := s.fs.Remove(path); err != nil {
				return fmt.Errorf("snapfile: failed to delete snapshot %s: %w", pathsafe.Shorten(path), err)
			}

			s.logger.Info("snapshot deleted", slog.String("path", path))
		}
	}

	if len(s.created) == 0 && len(s.updated) == 0 && len(s.toDelete) == 0 {
		return nil
	}

	return &MutationError{
		Dir:      s.dir,
		Created:  sliceutil.Map(s.created, s.relative),
		Updated:  sliceutil.Map(s.updated, s.relative),
		ToDelete: sliceutil.Map(s.toDelete, s.relative),
		Deleted:  s.allowDeletion,
	}
}

func (s *Session) resolve(name string) (string, error) {
	dir, err := s.Dir()
	if err != nil {
		return "", err
	}

	//nolint:wrapcheck
	return pathsafe.Resolve(dir, name)
}

// read returns the content of the snapshot file at path, if it exists.
func (s *Session) read(path string) ([]byte, bool, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("snapfile: failed to stat snapshot %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, false, fmt.Errorf("%w: snapshot exists but is not a file: %s", ErrNotAFile, pathsafe.Shorten(path))
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, false, fmt.Errorf("snapfile: failed to read snapshot %s: %w", path, err)
	}

	return data, true, nil
}

func (s *Session) write(v codec.Value, path string, prior []byte, exists bool) error {
	encoded, err := v.Encode()
	if err != nil {
		return fmt.Errorf("snapfile: cannot write snapshot %s: %w", pathsafe.Shorten(path), err)
	}

	s.unqueueDeletion(path)

	if exists && bytes.Equal(prior, encoded) {
		return nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapfile: failed to create snapshot directory %s: %w", filepath.Dir(path), err)
	}

	if err := afero.WriteFile(s.fs, path, encoded, 0o644); err != nil {
		return fmt.Errorf("snapfile: failed to write snapshot %s: %w", path, err)
	}

	if exists {
		s.record(path, mutationUpdated)
		s.logger.Debug("snapshot updated", slog.String("path", path))
	} else {
		s.record(path, mutationCreated)
		s.logger.Debug("snapshot created", slog.String("path", path))
	}

	return nil
}

// existing lists the files below dir. A missing dir has no files.
func (s *Session) existing(dir string) ([]string, error) {
	info, err := s.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("snapfile: failed to stat snapshot directory %s: %w", dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf(
			"%w: snapshot exists but is not a directory: %s",
			ErrNotADirectory,
			pathsafe.Shorten(dir),
		)
	}

	//nolint:wrapcheck
	return snaptree.Scan(s.fs, dir)
}

// record adds path to one of the mutation sets.
// A path keeps the first classification it received.
func (s *Session) record(path string, m mutation) {
	if _, ok := s.recorded[path]; ok {
		return
	}

	s.recorded[path] = m

	switch m {
	case mutationCreated:
		s.created = append(s.created, path)
	case mutationUpdated:
		s.updated = append(s.updated, path)
	case mutationToDelete:
		s.toDelete = append(s.toDelete, path)
	}
}

func (s *Session) queueDeletion(path string) {
	s.record(path, mutationToDelete)
	s.logger.Debug("snapshot marked for deletion", slog.String("path", path), slog.String("dir", s.dir))
}

func (s *Session) unqueueDeletion(path string) {
	if s.recorded[path] != mutationToDelete {
		return
	}

	delete(s.recorded, path)
	s.toDelete = slices.DeleteFunc(s.toDelete, func(p string) bool { return p == path })
}

func (s *Session) relative(path string) string {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return path
	}

	return rel
}

func (s *Session) reset() {
	s.created = nil
	s.updated = nil
	s.toDelete = nil
	clear(s.recorded)
}
