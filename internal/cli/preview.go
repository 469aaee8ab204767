// Package cli — preview.go implements the "fathom preview" command.
//
// Preview serves the latest production build locally. Before anything else
// — including configuration loading — it verifies the requested port is
// free: binding a known-occupied port would otherwise fail deeper in the
// server stack with a far less actionable error.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/kit"
	"github.com/fathomweb/fathom/internal/model"
	"github.com/fathomweb/fathom/internal/port"
)

// previewFlags holds the flag values for the preview command.
type previewFlags struct {
	port  int    // -p/--port
	open  bool   // -o/--open
	host  string // --host
	https bool   // --https
}

// NewPreviewCommand creates the "preview" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the production build locally",
		Long: `Serve the latest production build on a local port.

The requested port is checked for availability before anything starts;
an occupied port fails immediately with the owning process named when
it can be identified.

Examples:
  fathom preview
  fathom preview --port 4000 --open`,

		Args: cobra.NoArgs,

		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.port, "port", "p", 3000, "Port to bind")
	cmd.Flags().BoolVarP(&flags.open, "open", "o", false, "Open a browser tab after start")
	cmd.Flags().StringVar(&flags.host, "host", "localhost", "Host to bind")
	cmd.Flags().BoolVar(&flags.https, "https", false, "Serve over HTTPS")
	declareRemovedFlags(cmd)

	return cmd
}

// runPreview is the main logic function for the preview command.
func runPreview(cmd *cobra.Command, flags *previewFlags) error {
	warnUnknownOptions(cmd)

	if err := checkRemovedFlags(cmd); err != nil {
		return err
	}

	// Port pre-flight runs strictly before configuration loading and
	// collaborator invocation.
	if err := port.Preflight(flags.port); err != nil {
		return err
	}

	mode, err := model.ResolveRunMode(os.Getenv(runModeEnv), model.ModeProduction)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	server, err := subsystems.LoadPreview()
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

	<-ctx.Done()
	return nil
}
