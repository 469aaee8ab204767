// adapters.go implements the adapter registry and the built-in adapters.
//
// An adapter transforms build artifacts into a deployment-target-specific
// layout. Third-party adapters register themselves by name; the
// configuration's kit.adapter field selects which one runs after a build.
package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fathomweb/fathom/internal/config"
	"github.com/fathomweb/fathom/internal/kit"
	"github.com/fathomweb/fathom/internal/model"
)

// adapters is the process-wide adapter registry, keyed by adapter name.
var adapters = map[string]kit.Adapter{}

// Register adds an adapter to the registry, replacing any previous adapter
// of the same name. Registration happens at package init time for built-ins
// and may happen later for plugins.
func Register(a kit.Adapter) {
	adapters[a.Name()] = a
}

// Lookup resolves a configured adapter name. An unknown name is an
// operational error that lists the registered adapters, because the most
// common cause is a typo in fathom.config.json.
func Lookup(name string) (kit.Adapter, error) {
	if a, ok := adapters[name]; ok {
		return a, nil
	}

	known := make([]string, 0, len(adapters))
	for n := range adapters {
		known = append(known, n)
	}
	sort.Strings(known)

	return nil, model.NewCLIError(model.ExitGeneralError,
		fmt.Sprintf("unknown adapter %q (registered: %s)", name, strings.Join(known, ", ")))
}

func init() {
	Register(&staticAdapter{})
	Register(&nodeAdapter{})
}

// deployManifest is the YAML document each built-in adapter writes to
// describe its deployment output.
type deployManifest struct {
	Adapter     string   `yaml:"adapter"`
	Entries     int      `yaml:"entries"`
	Prerendered []string `yaml:"prerendered,omitempty"`
}

// staticAdapter targets static hosts: everything must be prerendered, and
// the output is a flat file tree description.
type staticAdapter struct{}

func (a *staticAdapter) Name() string { return "static" }

func (a *staticAdapter) Adapt(cfg *config.Config, data *kit.BuildData, prerendered *kit.Prerendered, log kit.Logger) error {
	dir := filepath.Join(data.OutDir, "deploy", a.Name())
	if err := writeDeployManifest(dir, &deployManifest{
		Adapter:     a.Name(),
		Entries:     len(data.Entries),
		Prerendered: prerendered.Paths,
	}); err != nil {
		return err
	}
	log("adapter %s: wrote %s", a.Name(), dir)
	return nil
}

// nodeAdapter targets long-running server hosts; prerendered routes are
// served as files and the rest route through the server entry.
type nodeAdapter struct{}

func (a *nodeAdapter) Name() string { return "node" }

func (a *nodeAdapter) Adapt(cfg *config.Config, data *kit.BuildData, prerendered *kit.Prerendered, log kit.Logger) error {
	dir := filepath.Join(data.OutDir, "deploy", a.Name())
	if err := writeDeployManifest(dir, &deployManifest{
		Adapter:     a.Name(),
		Entries:     len(data.Entries),
		Prerendered: prerendered.Paths,
	}); err != nil {
		return err
	}
	log("adapter %s: wrote %s", a.Name(), dir)
	return nil
}

// writeDeployManifest serializes a deployment manifest into dir.
func writeDeployManifest(dir string, m *deployManifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to create deploy directory", err)
	}
	doc, err := yaml.Marshal(m)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to serialize deploy manifest", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "deploy-manifest.yaml"), doc, 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write deploy manifest", err)
	}
	return nil
}
