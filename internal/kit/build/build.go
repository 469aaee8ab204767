// Package build implements the production build collaborator and the
// adapter registry.
//
// Bundling and transpilation belong to the framework's compiler pipeline,
// not to this package. The builder's job is the toolchain-facing half of a
// build: inventory the project sources into BuildData, record prerenderable
// routes, and write the build manifest that preview and adapters consume.
package build

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/kit"
	"github.com/fathomweb/fathom/internal/model"
)

// ManifestName is the build manifest file written into the output directory.
const ManifestName = "build-manifest.yaml"

// manifest is the YAML document written as the build manifest.
type manifest struct {
	// Build inventories the produced artifacts.
	Build *kit.BuildData `yaml:"build"`

	// Prerendered lists routes rendered to static files.
	Prerendered *kit.Prerendered `yaml:"prerendered"`
}

// Builder is the production build collaborator.
type Builder struct{}

// New creates the builder.
func New() *Builder {
	return &Builder{}
}

// Build walks the configured route and asset trees, inventories them into
// BuildData, detects prerendered routes, and writes the build manifest under
// <outdir>/output. The inventory is what adapters transform; nothing here
// compiles or bundles.
func (b *Builder) Build(cfg *config.Config, verbose bool, log kit.Logger) (*kit.BuildData, *kit.Prerendered, error) {
	outputDir := filepath.Join(cfg.Kit.Outdir, "output")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, nil, model.WrapCLIError(model.ExitGeneralError, "failed to create output directory", err)
	}

	data := &kit.BuildData{OutDir: outputDir}
	prerendered := &kit.Prerendered{}

	for _, root := range []string{cfg.Kit.Files.Routes, cfg.Kit.Files.Assets} {
		entries, err := inventory(root)
		if err != nil {
			return nil, nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to scan %s", root), err)
		}
		data.Entries = append(data.Entries, entries...)
	}

	// Routes already materialized as HTML need no server to deliver them;
	// they are the prerendered set.
	for _, entry := range data.Entries {
		if strings.HasPrefix(entry.Path, cfg.Kit.Files.Routes) && strings.HasSuffix(entry.Path, ".html") {
			rel := strings.TrimPrefix(entry.Path, cfg.Kit.Files.Routes)
			prerendered.Paths = append(prerendered.Paths, filepath.ToSlash(rel))
		}
	}

	if verbose {
		for _, entry := range data.Entries {
			log("  %s (%d bytes)", entry.Path, entry.Size)
		}
	}

	if err := writeManifest(outputDir, data, prerendered); err != nil {
		return nil, nil, err
	}

	log("built %d entries (%d prerendered)", len(data.Entries), len(prerendered.Paths))
	return data, prerendered, nil
}

// inventory walks root and records every regular file. A missing root is not
// an error: a project without static assets, say, simply contributes no
// entries.
func inventory(root string) ([]kit.BuildEntry, error) {
	if root == "" {
		return nil, nil
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var entries []kit.BuildEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, kit.BuildEntry{
			Path: filepath.ToSlash(path),
			Size: info.Size(),
		})
		return nil
	})
	return entries, err
}

// writeManifest serializes the build manifest to YAML in the output
// directory.
func writeManifest(outputDir string, data *kit.BuildData, prerendered *kit.Prerendered) error {
	doc, err := yaml.Marshal(&manifest{Build: data, Prerendered: prerendered})
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to serialize build manifest", err)
	}
	path := filepath.Join(outputDir, ManifestName)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write build manifest", err)
	}
	return nil
}
