// Package cli — package.go implements the "fathom package" command.
//
// Packaging delegates entirely to the packaging collaborator: the command
// only resolves the run mode, loads configuration, and passes the target
// directory through.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/model"
)

// NewPackageCommand creates the "package" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPackageCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Package the project's component library",
		Long: `Publish the project's library directory (kit.files.lib) as a
distributable package tree.

Examples:
  fathom package
  fathom package --dir dist-lib`,

		Args: cobra.NoArgs,

		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackage(cmd, dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "package", "Output directory")

	return cmd
}

// runPackage is the main logic function for the package command.
func runPackage(cmd *cobra.Command, dir string) error {
	warnUnknownOptions(cmd)

	if _, err := model.ResolveRunMode(os.Getenv(runModeEnv), model.ModeProduction); err != nil {
		return err
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	packager, err := subsystems.LoadPackage()
	if err != nil {
		return err
	}

	if err := packager.Package(cfg, dir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Packaged %s into %s\n", cfg.Kit.Files.Lib, dir)
	return nil
}
