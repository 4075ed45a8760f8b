// Package snapfilecli implements the operations of the snapfile command.
//
// Every operation works on an afero.Fs and writes its report to an
// io.Writer, so commands can run against the OS filesystem or an in-memory
// one.
package snapfilecli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"go.inout.gg/snapfile"
)

// StdinName makes an operation read its input from the provided reader.
const StdinName = "-"

// SessionArgs holds the arguments shared by operations comparing snapshots.
type SessionArgs struct {
	Logger        *slog.Logger
	Dir           string
	Update        bool
	AllowDeletion bool
}

func newSession(fs afero.Fs, args SessionArgs) (*snapfile.Session, error) {
	config := snapfile.NewConfig(
		snapfile.WithFs(fs),
		snapfile.WithLogger(args.Logger),
		snapfile.WithDir(args.Dir),
		snapfile.WithUpdate(args.Update),
		snapfile.WithAllowDeletion(args.AllowDeletion),
	)

	s, err := snapfile.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s, nil
}

// closeSession closes s and joins its report with err.
func closeSession(s *snapfile.Session, err error) error {
	return errors.Join(err, s.Close())
}

// readInput reads name from fs, or r when name is empty or StdinName.
func readInput(ctx context.Context, fs afero.Fs, r io.Reader, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if name == "" || name == StdinName {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}

		return data, nil
	}

	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", name, err)
	}

	return data, nil
}
