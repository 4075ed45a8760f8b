package commandutil

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.inout.gg/foundations/must"

	"go.inout.gg/snapfile"
	"go.inout.gg/snapfile/snapfilecli"
)

const (
	Verbose       = "verbose"
	Dir           = "dir"
	Input         = "input"
	Update        = snapfile.UpdateFlag
	AllowDeletion = snapfile.AllowDeletionFlag
)

func DirFlag() *cli.StringFlag {
	//nolint:exhaustruct
	return &cli.StringFlag{
		Name:    Dir,
		Usage:   "snapshot directory",
		Value:   "./snapshots",
		Sources: cli.EnvVars("SNAPFILE_DIR"),
	}
}

func InputFlag(usage string) *cli.StringFlag {
	//nolint:exhaustruct
	return &cli.StringFlag{
		Name:    Input,
		Aliases: []string{"i"},
		Usage:   usage,
		Value:   snapfilecli.StdinName,
	}
}

func UpdateFlags() []cli.Flag {
	return []cli.Flag{
		//nolint:exhaustruct
		&cli.BoolFlag{
			Name:    Update,
			Usage:   "create or update snapshots instead of comparing them",
			Sources: cli.EnvVars(snapfile.UpdateEnv),
		},
		//nolint:exhaustruct
		&cli.BoolFlag{
			Name:    AllowDeletion,
			Usage:   "allow --" + Update + " to delete snapshots without a value",
			Sources: cli.EnvVars(snapfile.AllowDeletionEnv),
		},
	}
}

// AbsPath makes a path given on the command line absolute against the
// working directory.
func AbsPath(path string) string {
	return ResolvePath(must.Must(os.Getwd()), path)
}

// ResolvePath makes path absolute against cwd. Absolute paths are only
// cleaned.
func ResolvePath(cwd, path string) string {
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		path = filepath.Clean(filepath.Join(cwd, path))
	}

	return path
}

// Logger returns a text logger on stderr, at debug level in verbose mode.
func Logger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool(Verbose) {
		level = slog.LevelDebug
	}

	//nolint:exhaustruct
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SessionArgs collects the flags shared by commands comparing snapshots.
func SessionArgs(cmd *cli.Command) snapfilecli.SessionArgs {
	return snapfilecli.SessionArgs{
		Logger:        Logger(cmd),
		Dir:           AbsPath(cmd.String(Dir)),
		Update:        cmd.Bool(Update),
		AllowDeletion: cmd.Bool(AllowDeletion),
	}
}
