package core

import (
	"context"
	"io"
	"os"
	"runtime"
)

// SystemContext holds the runtime context of a single reconciliation run.
// It wraps the standard Go "context" package and adds puppet-specific fields.
type SystemContext struct {
	context.Context `yaml:"-"`

	// Operating system information
	OS       string `yaml:"os"`       // runtime.GOOS (linux, darwin)
	Distro   string `yaml:"distro"`   // ubuntu, arch, fedora
	Hostname string `yaml:"hostname"` // Machine name

	// User information
	User    string `yaml:"user"`     // Current user
	HomeDir string `yaml:"home_dir"` // User's home directory

	// Transport layer (local or remote)
	Transport Transport `yaml:"-"`

	// Working mode
	DryRun bool `yaml:"-"` // If true, nothing is changed, only simulated.

	Stdout io.Writer `yaml:"-"`
	Stderr io.Writer `yaml:"-"`
}

func NewSystemContext(dryRun bool) *SystemContext {
	hostname, _ := os.Hostname()
	return &SystemContext{
		Context:   context.Background(),
		OS:        runtime.GOOS,
		Distro:    "unknown",
		Hostname:  hostname,
		User:      os.Getenv("USER"),
		HomeDir:   os.Getenv("HOME"),
		DryRun:    dryRun,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Transport: &LocalTransport{},
	}
}
