// Package model defines the domain types for the fathom CLI.
//
// Key design decision: commands never print fatal diagnostics or exit the
// process themselves. They return errors (usually CLIError) up to the CLI
// layer, which routes everything through the single error normalizer
// (errors.go). These types therefore carry enough information — exit codes,
// messages, wrapped causes — for that one exit point to act on.
package model

import (
	"fmt"
	"net"
)

// RunMode is the effective environment mode a command runs under.
// It replaces the process-wide NODE_ENV-style variable with an explicit
// value threaded through the dispatcher: the mode is resolved once at
// dispatch time (env override if set, else the verb's default) and the
// process environment is never mutated.
type RunMode string

const (
	// ModeDevelopment is the default run mode for the dev command.
	ModeDevelopment RunMode = "development"

	// ModeProduction is the default run mode for build, preview,
	// package, and sync.
	ModeProduction RunMode = "production"
)

// String returns the string representation of RunMode.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (m RunMode) String() string {
	return string(m)
}

// IsValid checks whether the RunMode value is one of the predefined modes.
func (m RunMode) IsValid() bool {
	switch m {
	case ModeDevelopment, ModeProduction:
		return true
	default:
		return false
	}
}

// ResolveRunMode computes the effective run mode for a command.
//
// The explicit env value (typically read from FATHOM_ENV) wins when set;
// otherwise the verb's default applies. An invalid env value is rejected
// rather than silently coerced, because a typo in CI ("prodcution") would
// otherwise flip a build into development mode without warning.
func ResolveRunMode(envValue string, verbDefault RunMode) (RunMode, error) {
	if envValue == "" {
		return verbDefault, nil
	}
	mode := RunMode(envValue)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid run mode %q (valid: development, production)", envValue)
	}
	return mode, nil
}

// ServerBinding is the result of starting a dev or preview server.
//
// It is produced by the devserver collaborators and consumed only by the
// network exposure reporter and the browser launcher. It is never persisted:
// the binding describes a live listener whose lifetime is the command's.
type ServerBinding struct {
	// Addr is the listener's bound network address as reported by the OS.
	Addr net.Addr

	// Port is the effective bound port. When the requested port was 0,
	// this is the port the OS actually assigned.
	Port int

	// HTTPS indicates whether the server expects TLS connections.
	// Only the scheme of reported URLs depends on it.
	HTTPS bool

	// Host is the effective bind host. Empty means the server chose its
	// own default (loopback); "0.0.0.0" and real hostnames mean the
	// server is reachable from other devices.
	Host string

	// LooseFS indicates the dev server is running with filesystem access
	// restrictions relaxed, making the whole local disk reachable through
	// server-relative file requests. Preview servers never set it.
	LooseFS bool

	// AllowList is the explicit set of filesystem paths the dev server is
	// permitted to serve despite otherwise restrictive access rules.
	// Empty when the framework defaults apply.
	AllowList []string
}

// URL returns the localhost URL for the binding, e.g. "http://localhost:5173".
// The loopback name is used regardless of the bound host because this URL
// is what the operator's own browser should open.
func (b *ServerBinding) URL() string {
	scheme := "http"
	if b.HTTPS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://localhost:%d", scheme, b.Port)
}

// ExitCode defines standard CLI exit codes.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an operational failure: bad flag usage,
	// an occupied port, or a subsystem error. All operational failures
	// share this code.
	ExitGeneralError ExitCode = 1

	// ExitConfigSyntax indicates the project configuration file failed to
	// parse. Syntax errors bypass the normalizer so the parser's own
	// rendering (with file:line:col) reaches the operator unmodified.
	ExitConfigSyntax ExitCode = 2
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
