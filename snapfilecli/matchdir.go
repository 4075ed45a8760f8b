package snapfilecli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

type MatchDirArgs struct {
	SessionArgs

	// Name is the snapshot directory, relative to Dir.
	Name string

	// Input is the YAML tree document, see DecodeTree. Empty or StdinName
	// reads r.
	Input string
}

// MatchDir compares the tree described by args.Input with the snapshot
// directory args.Name.
func MatchDir(ctx context.Context, fs afero.Fs, r io.Reader, w io.Writer, args MatchDirArgs) error {
	data, err := readInput(ctx, fs, r, args.Input)
	if err != nil {
		return err
	}

	tree, err := DecodeTree(data)
	if err != nil {
		return err
	}

	s, err := newSession(fs, args.SessionArgs)
	if err != nil {
		return err
	}

	if err := closeSession(s, s.MatchDir(tree, args.Name)); err != nil {
		//nolint:wrapcheck
		return err
	}

	if _, err := fmt.Fprintf(w, "snapshot directory %s matches\n", args.Name); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
