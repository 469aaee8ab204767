// Package cli implements the cobra-based commands for the fathom toolchain.
//
// Each verb (dev, build, preview, package, sync) is defined in its own file
// within this package. This file defines the root command, the collaborator
// registry wiring, and the single point through which every command failure
// is reported and turned into a process exit.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/kit"
	"github.com/fathomweb/fathom/internal/kit/build"
	"github.com/fathomweb/fathom/internal/kit/devserver"
	"github.com/fathomweb/fathom/internal/kit/packaging"
	"github.com/fathomweb/fathom/internal/kit/syncer"
	"github.com/fathomweb/fathom/internal/model"
)

// runModeEnv is the environment variable consulted for an externally-set
// run mode. It is only ever read; the dispatcher never writes it.
const runModeEnv = "FATHOM_ENV"

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// osExit is swappable so tests can observe exit codes without dying.
var osExit = os.Exit

// argv holds the raw argument vector used for unknown-option diagnostics.
// Execute fills it from os.Args; tests set it alongside cobra's SetArgs.
var argv []string

// SetArgv overrides the raw argument vector. Tests use it together with
// (*cobra.Command).SetArgs so unknown-option scanning sees the same input
// cobra parses.
func SetArgv(args []string) {
	argv = args
}

// subsystems is the verb → collaborator registry. Factories run only at
// dispatch time for the selected verb, so an unrelated collaborator's
// initialization cost or failure never affects other commands.
var subsystems = &kit.Registry{
	Dev:     func() (kit.DevServer, error) { return devserver.NewDev(), nil },
	Preview: func() (kit.PreviewServer, error) { return devserver.NewPreview(), nil },
	Build:   func() (kit.Builder, error) { return build.New(), nil },
	Package: func() (kit.Packager, error) { return packaging.New(), nil },
	Sync:    func() (kit.Syncer, error) { return syncer.New(), nil },
}

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action — it only provides
// help text. Actual functionality is provided by the verb subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fathom",
		Short: "The toolchain for fathom web applications",
		Long: `fathom is the command-line toolchain for the fathom web framework.

It starts the development server, produces production builds, previews
them locally, packages component libraries, and regenerates the project's
derived files.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// All failures flow through Execute's normalizer instead.
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	// Register subcommands. Each verb is defined in its own file
	// (dev.go, build.go, etc.) and returns a *cobra.Command.
	rootCmd.AddCommand(NewDevCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewPackageCommand())
	rootCmd.AddCommand(NewSyncCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Exactly one terminal action happens per failed run: either the config
// parser's own syntax rendering is printed (exit 2), or the normalized
// error is printed (exit 1). No command handler prints a fatal diagnostic
// or exits on its own.
func Execute(rootCmd *cobra.Command) {
	if argv == nil {
		argv = os.Args[1:]
	}

	if err := rootCmd.Execute(); err != nil {
		osExit(reportError(rootCmd.ErrOrStderr(), err))
	}
}

// reportError prints a command failure and returns the exit code.
//
// Config syntax errors are a defect in the operator's own file: they keep
// the parser's rendering, with its accurate source location, instead of
// being reformatted by the normalizer. Everything else is normalized to a
// bold red message plus a muted cause trace.
func reportError(w io.Writer, err error) int {
	var syn *config.SyntaxError
	if errors.As(err, &syn) {
		fmt.Fprintln(w, syn.Error())
		return int(model.ExitConfigSyntax)
	}

	ne := model.Normalize(err)
	color.New(color.FgRed, color.Bold).Fprintln(w, ne.Message)
	faint := color.New(color.Faint)
	for _, line := range ne.TrimmedTrace() {
		faint.Fprintf(w, "  %s\n", line)
	}
	return int(model.ExitGeneralError)
}

// warnUnknownOptions scans the raw argument vector for flags the command
// does not declare and prints a muted, non-fatal diagnostic for each.
//
// Parsing itself tolerates unknown flags (FParseErrWhitelist), so a script
// passing a stale option keeps working; the diagnostic tells its author
// what to clean up. Flag values that begin with "-" are not distinguished
// from flags here — the scan is a best-effort diagnostic, not a parser.
func warnUnknownOptions(cmd *cobra.Command) {
	flags := cmd.Flags()
	faint := color.New(color.Faint)

	for _, arg := range argv {
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			continue
		}

		known := false
		if strings.HasPrefix(arg, "--") {
			name := strings.TrimPrefix(arg, "--")
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				name = name[:eq]
			}
			known = flags.Lookup(name) != nil
		} else {
			// Shorthand or shorthand cluster; the first letter decides.
			known = flags.ShorthandLookup(arg[1:2]) != nil
		}

		if !known {
			faint.Fprintf(cmd.ErrOrStderr(), "Unknown option: %s\n", arg)
		}
	}
}
