package id

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"go.inout.gg/snapfile/snapfilecli"
)

func NewCommand() *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:      "id",
		Usage:     "print the snapshot directory name of test names",
		ArgsUsage: "<name>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			//nolint:wrapcheck
			return snapfilecli.ID(os.Stdout, snapfilecli.IDArgs{Names: cmd.Args().Slice()})
		},
	}
}
