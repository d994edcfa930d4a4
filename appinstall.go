// Package appinstall exposes the installer builder.
package appinstall

import (
	"github.com/adamwoolhether/appinstall/config"
	"github.com/adamwoolhether/appinstall/install"
)

// New instantiates a new *install.Installer for cfg with the provided options.
// If not specified, os/exec runs the extractor and launcher and console
// output is discarded.
func New(cfg config.Config, opts ...install.Option) (*install.Installer, error) {
	return install.Build(cfg, opts...)
}
