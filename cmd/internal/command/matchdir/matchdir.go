package matchdir

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"go.inout.gg/snapfile/cmd/internal/command/commandutil"
	"go.inout.gg/snapfile/snapfilecli"
)

func NewCommand(fs afero.Fs) *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:      "match-dir",
		Aliases:   []string{"md"},
		Usage:     "compare a YAML tree of values with a snapshot directory",
		ArgsUsage: "<name>",
		Flags: append([]cli.Flag{
			commandutil.DirFlag(),
			commandutil.InputFlag("YAML document describing the tree, - for standard input"),
		}, commandutil.UpdateFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("missing snapshot directory name")
			}

			input := cmd.String(commandutil.Input)
			if input != snapfilecli.StdinName {
				input = commandutil.AbsPath(input)
			}

			args := snapfilecli.MatchDirArgs{
				SessionArgs: commandutil.SessionArgs(cmd),
				Name:        name,
				Input:       input,
			}

			//nolint:wrapcheck
			return snapfilecli.MatchDir(ctx, fs, os.Stdin, os.Stdout, args)
		},
	}
}
