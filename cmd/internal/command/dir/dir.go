package dir

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"go.inout.gg/snapfile/snapfilecli"
)

func NewCommand() *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:      "dir",
		Usage:     "print the default snapshot directory of a test",
		ArgsUsage: "<test file> <test name>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected a test file and a test name, got %d arguments", cmd.Args().Len())
			}

			args := snapfilecli.DefaultDirArgs{
				TestFile: cmd.Args().Get(0),
				TestName: cmd.Args().Get(1),
			}

			//nolint:wrapcheck
			return snapfilecli.DefaultDir(os.Stdout, args)
		},
	}
}
