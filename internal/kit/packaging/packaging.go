// Package packaging implements the `fathom package` collaborator: it
// publishes the project's library directory (kit.files.lib) as a
// distributable package tree with a manifest describing its contents.
package packaging

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/model"
)

// ManifestName is the manifest file written at the package root.
const ManifestName = "fathom-package.yaml"

// packageManifest is the YAML document describing the packaged tree.
type packageManifest struct {
	// Source is the library directory the package was built from.
	Source string `yaml:"source"`

	// Files lists the packaged files relative to the package root.
	Files []string `yaml:"files"`
}

// Packager copies the library tree into the target directory.
type Packager struct{}

// New creates the packager.
func New() *Packager {
	return &Packager{}
}

// Package copies every file under the configured lib directory into dir,
// preserving the relative layout, and writes the package manifest. A
// missing lib directory is an operational error: packaging a library that
// does not exist is always a misconfiguration.
func (p *Packager) Package(cfg *config.Config, dir string) error {
	lib := cfg.Kit.Files.Lib
	if _, err := os.Stat(lib); err != nil {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("library directory %s does not exist (set kit.files.lib in %s)", lib, config.DefaultPath))
	}

	var files []string
	err := filepath.WalkDir(lib, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(lib, path)
		if err != nil {
			return err
		}
		if err := copyFile(path, filepath.Join(dir, rel)); err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to package %s", lib), err)
	}

	// Deterministic manifest ordering regardless of walk order.
	sort.Strings(files)

	doc, err := yaml.Marshal(&packageManifest{Source: lib, Files: files})
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to serialize package manifest", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), doc, 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write package manifest", err)
	}
	return nil
}

// copyFile copies src to dst, creating parent directories as needed.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, in)
	return err
}
