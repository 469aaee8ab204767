// Package config loads and validates the fathom project configuration.
//
// The configuration file (fathom.config.json) supports JSONC (JSON with
// Comments), so this package uses github.com/tidwall/jsonc to strip comments
// before parsing with the standard encoding/json library.
//
// Key responsibilities:
//   - Load and parse fathom.config.json (with JSONC support)
//   - Apply framework defaults for omitted fields
//   - Surface malformed files as SyntaxError with an accurate source
//     position, so the CLI can print the parser's own diagnostics instead
//     of a generic failure message
//
// Loading is deliberately uncached: every command invocation re-reads the
// file, so an edit between runs is always picked up.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// DefaultPath is the project-relative location of the configuration file.
const DefaultPath = "fathom.config.json"

// Config is the parsed project configuration. Only the fields the toolchain
// consumes are declared; unknown fields are silently ignored during parsing
// so framework plugins can extend the file without breaking the CLI.
type Config struct {
	// Kit holds the framework-level settings consumed by the toolchain.
	Kit KitConfig `json:"kit"`
}

// KitConfig holds the framework settings for the toolchain verbs.
type KitConfig struct {
	// Adapter names the deployment adapter invoked after build.
	// Empty means no adapter is configured and build stops at artifacts.
	Adapter string `json:"adapter,omitempty"`

	// Outdir is the directory for generated files and build artifacts.
	Outdir string `json:"outdir,omitempty"`

	// Files locates the project source trees.
	Files FilesConfig `json:"files"`

	// Serve holds dev-server settings.
	Serve ServeConfig `json:"serve"`
}

// FilesConfig locates the source trees the toolchain operates on.
type FilesConfig struct {
	// Lib is the shared-library source directory packaged by `fathom package`.
	Lib string `json:"lib,omitempty"`

	// Routes is the route source directory indexed by `fathom sync`.
	Routes string `json:"routes,omitempty"`

	// Assets is the static assets directory.
	Assets string `json:"assets,omitempty"`
}

// ServeConfig holds dev-server settings from the configuration file.
// Command-line flags override these values.
type ServeConfig struct {
	// Port is the default dev-server port. Zero means the framework
	// default (5173).
	Port int `json:"port,omitempty"`

	// FS holds the filesystem access rules for the dev server.
	FS FSConfig `json:"fs"`
}

// FSConfig controls which parts of the local disk the dev server may serve.
type FSConfig struct {
	// Strict restricts serving to the project tree plus the allow-list.
	// When false the server runs in loose filesystem mode and every file
	// on the machine is reachable through server-relative requests.
	Strict *bool `json:"strict,omitempty"`

	// Allow is the explicit set of directories permitted to be served
	// despite strict mode.
	Allow []string `json:"allow,omitempty"`
}

// SyntaxError reports a malformed configuration file. It carries the source
// position so the CLI can render the parser's diagnostics with file:line:col
// accuracy. SyntaxError deliberately bypasses the generic error normalizer:
// re-formatting it would lose the position information the operator needs.
type SyntaxError struct {
	// Path is the configuration file that failed to parse.
	Path string

	// Line and Col are 1-based source coordinates of the failure.
	Line, Col int

	// Msg is the parser's own description of the problem.
	Msg string
}

// Error satisfies the error interface with the full diagnostic rendering.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}

// defaults returns the zero-config framework defaults. Missing files or
// omitted fields resolve to these values.
func defaults() *Config {
	return &Config{
		Kit: KitConfig{
			Outdir: ".fathom",
			Files: FilesConfig{
				Lib:    "src/lib",
				Routes: "src/routes",
				Assets: "static",
			},
			Serve: ServeConfig{
				Port: 5173,
			},
		},
	}
}

// Load reads the configuration file at path, strips JSONC comments, parses
// it, and merges the result over the framework defaults.
//
// A missing file is not an error: the framework is zero-config and the
// defaults apply. A present but malformed file returns *SyntaxError.
//
// Load re-reads the file on every call — there is no cross-run caching.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Strip JSONC comments. ToJSON preserves byte offsets by replacing
	// comment characters with spaces, so positions computed from the
	// stripped bytes still point at the right spot in the original file.
	stripped := jsonc.ToJSON(data)

	cfg := defaults()
	if err := json.Unmarshal(stripped, cfg); err != nil {
		return nil, toSyntaxError(path, stripped, err)
	}

	return cfg, nil
}

// toSyntaxError converts an encoding/json parse failure into a *SyntaxError
// with 1-based line/column coordinates computed from the byte offset.
// Unmarshal failures without an offset (rare) fall back to position 1:1.
func toSyntaxError(path string, data []byte, err error) error {
	var offset int64

	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syn):
		offset = syn.Offset
	case errors.As(err, &typ):
		offset = typ.Offset
	}

	line, col := 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return &SyntaxError{Path: path, Line: line, Col: col, Msg: err.Error()}
}
