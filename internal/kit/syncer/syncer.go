// Package syncer implements the `fathom sync` collaborator: it regenerates
// the derived project files under the configured output directory.
//
// The generated manifest is what editor tooling and the framework runtime
// read to know the project's route surface without re-walking the source
// tree themselves. Sync is idempotent and safe to run at any time.
package syncer

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/model"
)

// ManifestName is the generated manifest file under the output directory.
const ManifestName = "manifest.json"

// projectManifest is the JSON document written by Sync. JSON rather than
// YAML because the consumers are editor integrations, which universally
// speak JSON.
type projectManifest struct {
	// Version identifies the manifest schema.
	Version int `json:"version"`

	// Routes lists the route paths derived from the routes tree, sorted.
	Routes []string `json:"routes"`

	// Lib is the configured library directory, recorded so editors can
	// resolve library imports.
	Lib string `json:"lib"`
}

// Syncer regenerates the derived files.
type Syncer struct{}

// New creates the syncer.
func New() *Syncer {
	return &Syncer{}
}

// Sync derives the route surface from the routes tree and writes the
// project manifest under <outdir>. A missing routes tree yields an empty
// route list, not an error: sync must work on a fresh project.
func (s *Syncer) Sync(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Kit.Outdir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to create output directory", err)
	}

	routes, err := deriveRoutes(cfg.Kit.Files.Routes)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to derive routes", err)
	}

	doc, err := json.MarshalIndent(&projectManifest{
		Version: 1,
		Routes:  routes,
		Lib:     cfg.Kit.Files.Lib,
	}, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to serialize project manifest", err)
	}

	path := filepath.Join(cfg.Kit.Outdir, ManifestName)
	if err := os.WriteFile(path, append(doc, '\n'), 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write project manifest", err)
	}
	return nil
}

// deriveRoutes maps the routes tree to route paths: every directory
// containing at least one file is a route, with the tree root as "/".
func deriveRoutes(root string) ([]string, error) {
	if root == "" {
		return nil, nil
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	seen := map[string]bool{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		route := "/"
		if rel != "." {
			route = "/" + filepath.ToSlash(rel)
		}
		seen[route] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	routes := make([]string, 0, len(seen))
	for route := range seen {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes, nil
}
