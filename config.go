package snapfile

import (
	"cmp"
	"log/slog"
	"os"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"go.inout.gg/foundations/debug"

	"go.inout.gg/snapfile/pkg/snapdiff"
)

// Config is the configuration for a Session.
//
// Use NewConfig to instantiate a new instance.
//
// Fs, Logger and DiffOrder are optional and fall back to the OS filesystem,
// slog.Default and snapdiff.DefaultOrder respectively. Dir sets the snapshot
// directory up front; when it is empty, New derives one with DirFunc or
// DefaultDir.
type Config struct {
	Fs            afero.Fs                   // optional
	Logger        *slog.Logger               // optional
	DirFunc       func(tb testing.TB) string // optional
	Dir           string                     // optional
	DiffOrder     snapdiff.Order             // optional
	Update        bool                       // optional
	AllowDeletion bool                       // optional
}

// Option is a function that configures a Config.
type Option func(*Config)

// WithFs sets the filesystem snapshots are read from and written to.
func WithFs(fs afero.Fs) Option {
	return func(c *Config) { c.Fs = fs }
}

// WithLogger adds a logger to the Config.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithDir sets the snapshot directory.
func WithDir(dir string) Option {
	return func(c *Config) { c.Dir = dir }
}

// WithDirFunc sets the function deriving the snapshot directory of a test
// when no directory is set explicitly.
func WithDirFunc(f func(tb testing.TB) string) Option {
	return func(c *Config) { c.DirFunc = f }
}

// WithUpdate enables or disables update mode.
func WithUpdate(enabled bool) Option {
	return func(c *Config) { c.Update = enabled }
}

// WithAllowDeletion allows update mode to delete snapshot files that no
// longer have a value.
func WithAllowDeletion(allowed bool) Option {
	return func(c *Config) { c.AllowDeletion = allowed }
}

// WithDiffOrder sets which operand comes first in mismatch diffs.
func WithDiffOrder(o snapdiff.Order) Option {
	return func(c *Config) { c.DiffOrder = o }
}

// NewConfig creates a new Config and applies the provided options.
func NewConfig(opts ...Option) *Config {
	//nolint:exhaustruct
	config := &Config{}
	for _, o := range opts {
		o(config)
	}

	config.defaults()

	debug.Assert(config.Fs != nil, "Fs is required")
	debug.Assert(config.Logger != nil, "Logger is required")

	return config
}

func (c *Config) defaults() {
	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	c.DiffOrder = cmp.Or(c.DiffOrder, snapdiff.DefaultOrder())
}

// envBool reports whether the environment variable name holds a true value.
// Unset and unparsable values count as false.
func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}
