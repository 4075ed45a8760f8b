// Package snapfile implements snapshot testing against plain files.
//
// A test compares a value (text or binary) with a snapshot file, or a tree of
// values with a directory of snapshot files. When update mode is enabled the
// snapshot files are created or rewritten instead, and the test is failed at
// the end so the changes get reviewed before they are committed.
//
//	func TestRender(t *testing.T) {
//		snap := snapfile.New(t)
//		snap.AssertMatch(render(), "render.txt")
//	}
//
// Run `go test -snapshot-update` to create or update snapshots, and add
// `-allow-snapshot-deletion` to remove snapshot files that no longer have a
// value in a directory comparison.
package snapfile

import (
	"errors"

	"go.inout.gg/snapfile/pkg/codec"
	"go.inout.gg/snapfile/pkg/pathsafe"
	"go.inout.gg/snapfile/pkg/snapdiff"
	"go.inout.gg/snapfile/pkg/snaptree"
)

const (
	// UpdateFlag is the go test flag that enables update mode.
	UpdateFlag = "snapshot-update"

	// AllowDeletionFlag is the go test flag that allows update mode to delete
	// snapshot files.
	AllowDeletionFlag = "allow-snapshot-deletion"

	// UpdateEnv and AllowDeletionEnv are environment equivalents of the flags.
	UpdateEnv        = "SNAPFILE_UPDATE"
	AllowDeletionEnv = "SNAPFILE_ALLOW_DELETION"
)

var (
	ErrRootNotSet      = errors.New("snapfile: snapshot directory was not set")
	ErrNotAFile        = errors.New("snapfile: not a file")
	ErrNotADirectory   = errors.New("snapfile: not a directory")
	ErrSnapshotMissing = errors.New("snapfile: missing snapshot")
	ErrContentMismatch = errors.New("snapfile: value does not match snapshot")
	ErrDirMismatch     = errors.New("snapfile: values do not match snapshot directory")
	ErrSessionMutated  = errors.New("snapfile: snapshot directory was modified")

	ErrPathEscape           = pathsafe.ErrPathEscape
	ErrInvalidName          = pathsafe.ErrInvalidName
	ErrNotAMapping          = snaptree.ErrNotAMapping
	ErrUnsupportedValueType = codec.ErrUnsupportedValueType
	ErrSerializerMismatch   = codec.ErrSerializerMismatch
)

type (
	Value     = codec.Value
	Dir       = snaptree.Dir
	DiffOrder = snapdiff.Order
)

const (
	ValueFirst    = snapdiff.ValueFirst    // tested value on the left
	ExpectedFirst = snapdiff.ExpectedFirst // snapshot on the left
)

// Text returns a text value, see codec.Text.
func Text(s string) Value { return codec.Text(s) }

// Binary returns a binary value, see codec.Binary.
func Binary(b []byte) Value { return codec.Binary(b) }
