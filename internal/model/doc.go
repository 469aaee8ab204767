// Package model defines the domain types and value objects for the
// fathom CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (ServerBinding, RunMode, NormalizedError, etc.) are transient
// values produced and consumed within a single command run — the CLI is
// single-shot and persists no state between invocations.
//
// The package also defines exit codes (ExitCode), a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// and the error normalizer (Normalize) through which every command failure
// flows before being reported.
package model
