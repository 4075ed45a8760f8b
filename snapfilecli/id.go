package snapfilecli

import (
	"fmt"
	"io"
	"strings"

	"go.inout.gg/snapfile"
	"go.inout.gg/snapfile/pkg/pathsafe"
)

type IDArgs struct {
	Names []string
}

// ID writes the file name each of args.Names maps to as a snapshot
// directory component.
func ID(w io.Writer, args IDArgs) error {
	var sb strings.Builder
	for _, name := range args.Names {
		sb.WriteString(pathsafe.SanitizeFilename(name))
		sb.WriteString("\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

type DefaultDirArgs struct {
	TestFile string
	TestName string
}

// DefaultDir writes the default snapshot directory of a test, see
// snapfile.DefaultDir.
func DefaultDir(w io.Writer, args DefaultDirArgs) error {
	if _, err := fmt.Fprintln(w, snapfile.DefaultDir(args.TestFile, args.TestName)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
