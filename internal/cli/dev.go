// Package cli — dev.go implements the "fathom dev" command.
//
// The dev command starts the development server through the devserver
// collaborator, then prints the network exposure report and optionally
// opens the browser. It holds the server up until interrupted.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/kit"
	"github.com/fathomweb/fathom/internal/model"
)

// devFlags holds the flag values for the dev command.
type devFlags struct {
	port  int    // -p/--port: 0 falls back to the configured port
	open  bool   // -o/--open: launch the browser after start
	host  string // --host: expose the server on a non-loopback host
	https bool   // --https: serve over TLS
}

// NewDevCommand creates the "dev" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDevCommand() *cobra.Command {
	flags := &devFlags{}

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development server for the current project.

The server binds to localhost unless --host is given. When the server is
reachable from other devices, a connectivity report with filesystem
exposure warnings is printed after start.

Examples:
  fathom dev
  fathom dev --port 3000 --open
  fathom dev --host 0.0.0.0`,

		Args: cobra.NoArgs,

		// Unknown flags are tolerated by the parser and reported as
		// muted diagnostics instead of aborting the command.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.port, "port", "p", 0, "Port to bind (default: project config)")
	cmd.Flags().BoolVarP(&flags.open, "open", "o", false, "Open a browser tab after start")
	cmd.Flags().StringVar(&flags.host, "host", "", "Expose the server on the given host")
	cmd.Flags().BoolVar(&flags.https, "https", false, "Serve over HTTPS")
	declareRemovedFlags(cmd)

	return cmd
}

// runDev is the main logic function for the dev command.
func runDev(cmd *cobra.Command, flags *devFlags) error {
	warnUnknownOptions(cmd)

	// The removed-flag check runs before any configuration load so stale
	// scripts fail with the migration message and nothing else.
	if err := checkRemovedFlags(cmd); err != nil {
		return err
	}

	mode, err := model.ResolveRunMode(os.Getenv(runModeEnv), model.ModeDevelopment)
	if err != nil {
		return err
	}

	// Configuration is loaded fresh on every invocation.
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	server, err := subsystems.LoadDev()
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	binding, err := server.Start(ctx, cfg, kit.StartOptions{
		Port:  flags.port,
		Host:  flags.host,
		HTTPS: flags.https,
		Mode:  mode,
	})
	if err != nil {
		return err
	}

	afterServe(cmd, binding, flags.open)

	// Hold the server up until the operator interrupts.
	<-ctx.Done()
	return nil
}
