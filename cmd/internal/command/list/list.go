package list

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"go.inout.gg/snapfile/cmd/internal/command/commandutil"
	"go.inout.gg/snapfile/snapfilecli"
)

func NewCommand(fs afero.Fs) *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "list snapshot files",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			commandutil.DirFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := snapfilecli.ListArgs{
				Dir:  commandutil.AbsPath(cmd.String(commandutil.Dir)),
				Name: cmd.Args().First(),
			}

			//nolint:wrapcheck
			return snapfilecli.List(ctx, fs, os.Stdout, args)
		},
	}
}
