package snapfilecli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"go.inout.gg/snapfile/pkg/pathsafe"
	"go.inout.gg/snapfile/pkg/snaptree"
)

type ListArgs struct {
	Dir string

	// Name optionally narrows the listing to a subdirectory of Dir.
	Name string
}

// List writes the snapshot files below args.Dir, one slash-separated path
// per line.
func List(ctx context.Context, fs afero.Fs, w io.Writer, args ListArgs) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	dir := args.Dir
	if args.Name != "" {
		var err error

		dir, err = pathsafe.Resolve(args.Dir, args.Name)
		if err != nil {
			//nolint:wrapcheck
			return err
		}
	}

	files, err := snaptree.Scan(fs, filepath.Clean(dir))
	if err != nil {
		//nolint:wrapcheck
		return err
	}

	var b bytes.Buffer
	for _, f := range files {
		b.WriteString(f)
		b.WriteString("\n")
	}

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
