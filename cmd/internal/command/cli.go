package command

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"go.inout.gg/snapfile/cmd/internal/command/commandutil"
	"go.inout.gg/snapfile/cmd/internal/command/dir"
	"go.inout.gg/snapfile/cmd/internal/command/id"
	"go.inout.gg/snapfile/cmd/internal/command/list"
	"go.inout.gg/snapfile/cmd/internal/command/match"
	"go.inout.gg/snapfile/cmd/internal/command/matchdir"
	"go.inout.gg/snapfile/pkg/buildinfo"
)

// Execute evaluates given os.Args and executes a matched command.
func Execute(ctx context.Context) error {
	fs := afero.NewOsFs()

	var bi buildinfo.Standard

	//nolint:exhaustruct
	cmd := &cli.Command{
		Name:    "snapfile",
		Usage:   "Compare values with snapshot files.",
		Version: bi.Version(),
		Flags: []cli.Flag{
			//nolint:exhaustruct
			&cli.BoolFlag{
				Name:  commandutil.Verbose,
				Usage: "verbose mode",
				Value: false,
			},
		},
		Commands: []*cli.Command{
			match.NewCommand(fs),
			matchdir.NewCommand(fs),
			list.NewCommand(fs),
			id.NewCommand(),
			dir.NewCommand(),
		},
	}

	//nolint:wrapcheck
	return cmd.Run(ctx, os.Args)
}
