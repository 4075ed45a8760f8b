package match

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"go.inout.gg/snapfile/cmd/internal/command/commandutil"
	"go.inout.gg/snapfile/snapfilecli"
)

const binaryFlag = "binary"

func NewCommand(fs afero.Fs) *cli.Command {
	//nolint:exhaustruct
	return &cli.Command{
		Name:      "match",
		Aliases:   []string{"m"},
		Usage:     "compare a value with a snapshot file",
		ArgsUsage: "<name>",
		Flags: append([]cli.Flag{
			commandutil.DirFlag(),
			commandutil.InputFlag("file holding the value, - for standard input"),

			//nolint:exhaustruct
			&cli.BoolFlag{
				Name:  binaryFlag,
				Usage: "compare the value byte for byte",
				Value: false,
			},
		}, commandutil.UpdateFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("missing snapshot name")
			}

			input := cmd.String(commandutil.Input)
			if input != snapfilecli.StdinName {
				input = commandutil.AbsPath(input)
			}

			args := snapfilecli.MatchArgs{
				SessionArgs: commandutil.SessionArgs(cmd),
				Name:        name,
				Input:       input,
				Binary:      cmd.Bool(binaryFlag),
			}

			//nolint:wrapcheck
			return snapfilecli.Match(ctx, fs, os.Stdin, os.Stdout, args)
		},
	}
}
