package snapfilecli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"go.inout.gg/snapfile/pkg/codec"
)

type MatchArgs struct {
	SessionArgs

	// Name is the snapshot file, relative to Dir.
	Name string

	// Input is the file holding the value. Empty or StdinName reads r.
	Input string

	// Binary compares the input byte for byte instead of as text.
	Binary bool
}

// Match compares the content of args.Input with the snapshot args.Name.
func Match(ctx context.Context, fs afero.Fs, r io.Reader, w io.Writer, args MatchArgs) error {
	data, err := readInput(ctx, fs, r, args.Input)
	if err != nil {
		return err
	}

	value := codec.Binary(data)
	if !args.Binary {
		value = codec.Text(codec.DecodeText(data))
	}

	s, err := newSession(fs, args.SessionArgs)
	if err != nil {
		return err
	}

	if err := closeSession(s, s.Match(value, args.Name)); err != nil {
		//nolint:wrapcheck
		return err
	}

	if _, err := fmt.Fprintf(w, "snapshot %s matches\n", args.Name); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
