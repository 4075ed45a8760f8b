// Package buildinfo reports which snapfile release a binary was built from.
package buildinfo

import "runtime/debug"

// BuildInfo is what `snapfile --version` prints.
type BuildInfo interface {
	Version() string
}

// Standard resolves the version of the running snapfile binary.
type Standard struct{}

// buildVersion is stamped by release builds:
//
//	go build -ldflags "-X go.inout.gg/snapfile/pkg/buildinfo.buildVersion=v0.3.0" ./cmd/snapfile
//
//nolint:gochecknoglobals
var buildVersion string

// Version returns the stamped release version. Binaries installed with
// `go install go.inout.gg/snapfile/cmd/snapfile@version` or run as a module
// tool report their module version instead, and local builds report "devel".
func (Standard) Version() string {
	if buildVersion != "" {
		return buildVersion
	}

	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	return "devel"
}
