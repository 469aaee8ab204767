// Package cli — sync.go implements the "fathom sync" command.
//
// Sync delegates entirely to the sync collaborator, which regenerates the
// project's derived files under the configured output directory.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/model"
)

// NewSyncCommand creates the "sync" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate the project's derived files",
		Long: `Regenerate the route manifest and other derived files under the
configured output directory (kit.outdir).`,

		Args: cobra.NoArgs,

		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd)
		},
	}

	return cmd
}

// runSync is the main logic function for the sync command.
func runSync(cmd *cobra.Command) error {
	warnUnknownOptions(cmd)

	if _, err := model.ResolveRunMode(os.Getenv(runModeEnv), model.ModeProduction); err != nil {
		return err
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	s, err := subsystems.LoadSync()
	if err != nil {
		return err
	}

	if err := s.Sync(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Synced project files into %s\n", cfg.Kit.Outdir)
	return nil
}
