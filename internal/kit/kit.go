package kit

import (
	"context"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/model"
)

// Logger is the minimal logging surface handed to collaborators. Adapters in
// particular receive it so their progress lines render in the CLI's style
// without the adapter importing the CLI.
type Logger func(format string, args ...any)

// StartOptions carries the effective flag values for starting a dev or
// preview server. Zero values mean "use the configuration default".
type StartOptions struct {
	// Port is the requested port; 0 falls back to the config default.
	Port int

	// Host is the requested bind host; empty keeps the loopback default.
	Host string

	// HTTPS requests TLS.
	HTTPS bool

	// Mode is the resolved run mode threaded from the dispatcher.
	Mode model.RunMode
}

// DevServer starts the development server and reports its binding.
// The listener's lifetime is tied to ctx: cancelling it shuts the server down.
type DevServer interface {
	Start(ctx context.Context, cfg *config.Config, opts StartOptions) (*model.ServerBinding, error)
}

// PreviewServer serves previously built artifacts. It shares the binding
// shape with DevServer so the exposure report can describe either.
type PreviewServer interface {
	Start(ctx context.Context, cfg *config.Config, opts StartOptions) (*model.ServerBinding, error)
}

// BuildEntry records one artifact produced by a build.
type BuildEntry struct {
	// Path is the artifact path relative to the project root.
	Path string `yaml:"path"`

	// Size is the artifact size in bytes.
	Size int64 `yaml:"size"`
}

// BuildData is the builder's primary output: the artifact inventory an
// adapter transforms into a deployment-target layout.
type BuildData struct {
	// OutDir is the directory the artifacts were written to.
	OutDir string `yaml:"outDir"`

	// Entries inventories the built artifacts.
	Entries []BuildEntry `yaml:"entries"`
}

// Prerendered lists the routes rendered to static files at build time.
type Prerendered struct {
	// Paths are the prerendered route paths.
	Paths []string `yaml:"paths"`
}

// Builder produces build artifacts from the project source.
type Builder interface {
	Build(cfg *config.Config, verbose bool, log Logger) (*BuildData, *Prerendered, error)
}

// Adapter transforms built artifacts into a deployment-target-specific
// output format. Adapters are pluggable; the configuration's kit.adapter
// field selects one by name.
type Adapter interface {
	// Name identifies the adapter in configuration and log output.
	Name() string

	// Adapt writes the deployment output for the given build.
	Adapt(cfg *config.Config, data *BuildData, prerendered *Prerendered, log Logger) error
}

// Packager publishes the project's library directory as a distributable
// package tree.
type Packager interface {
	Package(cfg *config.Config, dir string) error
}

// Syncer regenerates the project's derived files (route manifest, ambient
// metadata) under the configured output directory.
type Syncer interface {
	Sync(cfg *config.Config) error
}
