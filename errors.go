package snapfile

import (
	"strings"

	"go.inout.gg/snapfile/pkg/pathsafe"
)

// MismatchError reports a value that differs from its stored snapshot.
type MismatchError struct {
	// Path is the absolute path of the snapshot file.
	Path string

	// Diff describes the difference between the value and the snapshot.
	Diff string
}

func (e *MismatchError) Error() string {
	return "value does not match the expected value in snapshot " + pathsafe.Shorten(e.Path) + "\n" + e.Diff
}

func (e *MismatchError) Is(target error) bool { return target == ErrContentMismatch }

// DirMismatchError reports a value tree whose paths differ from the files in
// its snapshot directory.
type DirMismatchError struct {
	Dir                    string
	ValuesWithoutSnapshots []string
	SnapshotsWithoutValues []string
}

func (e *DirMismatchError) Error() string {
	var sb strings.Builder

	sb.WriteString("Values do not match snapshots in ")
	sb.WriteString(pathsafe.Shorten(e.Dir))
	writeSection(&sb, "Values without snapshots:", e.ValuesWithoutSnapshots)
	writeSection(&sb, "Snapshots without values:", e.SnapshotsWithoutValues)
	sb.WriteString("\n  Run with -" + UpdateFlag + " to update the snapshot directory.")

	return sb.String()
}

func (e *DirMismatchError) Is(target error) bool { return target == ErrDirMismatch }

// MutationError reports the snapshot files a session created, updated or
// marked for deletion. Paths are relative to Dir.
type MutationError struct {
	Dir      string
	Created  []string
	Updated  []string
	ToDelete []string

	// Deleted is set when the files in ToDelete were removed.
	Deleted bool
}

func (e *MutationError) Error() string {
	var sb strings.Builder

	sb.WriteString("Snapshot directory was modified: ")
	sb.WriteString(pathsafe.Shorten(e.Dir))
	sb.WriteString("\n  (verify that the changes are expected before committing them to version control)")
	writeSection(&sb, "Created snapshots:", e.Created)
	writeSection(&sb, "Updated snapshots:", e.Updated)

	if e.Deleted {
		writeSection(&sb, "Deleted snapshots:", e.ToDelete)
	} else {
		writeSection(
			&sb,
			"Snapshots that should be deleted: (run with -"+AllowDeletionFlag+" to delete them)",
			e.ToDelete,
		)
	}

	return sb.String()
}

func (e *MutationError) Is(target error) bool { return target == ErrSessionMutated }

func writeSection(sb *strings.Builder, title string, entries []string) {
	if len(entries) == 0 {
		return
	}

	sb.WriteString("\n  ")
	sb.WriteString(title)

	for _, e := range entries {
		sb.WriteString("\n    ")
		sb.WriteString(e)
	}
}
