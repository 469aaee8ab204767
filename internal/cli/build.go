// Package cli — build.go implements the "fathom build" command.
//
// Build produces the production artifacts through the builder collaborator
// and, when the configuration names an adapter, hands the result to it.
// After a successful adapter run the process exits 0 immediately: adapters
// are third-party code that may hold connections open, and forcing closure
// here keeps `fathom build` from hanging in CI. Without an adapter, a
// warning with a documentation pointer is printed instead.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/kit"
	buildkit "github.com/fathomweb/fathom/internal/kit/build"
	"github.com/fathomweb/fathom/internal/model"
)

// adapterDocsURL points the operator at the adapter documentation when no
// adapter is configured.
const adapterDocsURL = "https://fathomweb.dev/docs/adapters"

// NewBuildCommand creates the "build" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewBuildCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Create a production build",
		Long: `Create a production build of the current project.

If the project configuration names an adapter (kit.adapter), the adapter
runs after the build and the process exits immediately afterwards, closing
any resources the adapter may have left open.

Examples:
  fathom build
  fathom build --verbose`,

		Args: cobra.NoArgs,

		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, verbose)
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log each built entry")

	return cmd
}

// runBuild is the main logic function for the build command.
func runBuild(cmd *cobra.Command, verbose bool) error {
	warnUnknownOptions(cmd)

	if _, err := model.ResolveRunMode(os.Getenv(runModeEnv), model.ModeProduction); err != nil {
		return err
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	builder, err := subsystems.LoadBuild()
	if err != nil {
		return err
	}

	log := func(format string, args ...any) {
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	}

	data, prerendered, err := builder.Build(cfg, verbose, log)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nTo preview your production build, run fathom preview")

	if cfg.Kit.Adapter == "" {
		warn := color.New(color.FgYellow, color.Bold)
		warn.Fprintln(cmd.OutOrStdout(), "No adapter specified")
		color.New(color.Faint).Fprintf(cmd.OutOrStdout(), "See %s to deploy your build\n", adapterDocsURL)
		return nil
	}

	if err := runAdapter(cmd, cfg, data, prerendered, log); err != nil {
		return err
	}

	// Force closure of anything the adapter left open. Until adapters
	// carry an explicit shutdown contract, exiting here is what keeps
	// build from hanging on a leaked connection.
	osExit(int(model.ExitSuccess))
	return nil
}

// runAdapter resolves the configured adapter and runs it against the build.
func runAdapter(cmd *cobra.Command, cfg *config.Config, data *kit.BuildData, prerendered *kit.Prerendered, log kit.Logger) error {
	adapter, err := buildkit.Lookup(cfg.Kit.Adapter)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nRunning adapter %s\n", adapter.Name())
	return adapter.Adapt(cfg, data, prerendered, log)
}
