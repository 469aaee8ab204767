package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProjectFile creates a file (and its parents) under the current test
// working directory.
func writeProjectFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// stubExit replaces the process-exit hook for the duration of the test and
// returns a pointer to the recorded exit code (-1 when never called).
func stubExit(t *testing.T) *int {
	t.Helper()
	code := -1
	orig := osExit
	osExit = func(c int) { code = c }
	t.Cleanup(func() { osExit = orig })
	return &code
}

// TestBuild_NoAdapterWarnsAndSucceeds covers the adapter-less build: the
// build completes, the preview hint and adapter warning are printed with the
// documentation pointer, and the process is NOT force-exited.
func TestBuild_NoAdapterWarnsAndSucceeds(t *testing.T) {
	chdir(t, t.TempDir())
	writeProjectFile(t, filepath.Join("src", "routes", "index.html"), "<html></html>")

	exitCode := stubExit(t)
	root, out, _ := newTestRoot(t, "build")

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "To preview your production build, run fathom preview")
	assert.Contains(t, out.String(), "No adapter specified")
	assert.Contains(t, out.String(), adapterDocsURL)
	assert.Equal(t, -1, *exitCode, "build without an adapter must not force-exit")
}

// TestBuild_WithAdapterRunsAndForcesExit verifies the adapter path: the
// configured adapter runs, its deploy manifest is written, and the process
// exits 0 immediately afterwards.
func TestBuild_WithAdapterRunsAndForcesExit(t *testing.T) {
	chdir(t, t.TempDir())
	writeProjectConfig(t, `{"kit": {"adapter": "static"}}`)
	writeProjectFile(t, filepath.Join("src", "routes", "index.html"), "<html></html>")

	exitCode := stubExit(t)
	root, out, _ := newTestRoot(t, "build")

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Running adapter static")
	assert.Equal(t, 0, *exitCode)
	assert.FileExists(t, filepath.Join(".fathom", "output", "deploy", "static", "deploy-manifest.yaml"))
}

// TestBuild_UnknownAdapter verifies the failure message lists the registered
// adapter names so a typo is easy to spot.
func TestBuild_UnknownAdapter(t *testing.T) {
	chdir(t, t.TempDir())
	writeProjectConfig(t, `{"kit": {"adapter": "cloudlfare"}}`)

	stubExit(t)
	root, _, _ := newTestRoot(t, "build")

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown adapter "cloudlfare"`)
}

// TestBuild_VerboseLogsEntries verifies --verbose prints per-entry lines.
func TestBuild_VerboseLogsEntries(t *testing.T) {
	chdir(t, t.TempDir())
	writeProjectFile(t, filepath.Join("src", "routes", "about.html"), "<html></html>")

	stubExit(t)
	root, out, _ := newTestRoot(t, "build", "--verbose")

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "about.html")
}

// TestPackage_CopiesLibrary verifies the package happy path through the
// root command: library files land in the target directory together with
// the package manifest.
func TestPackage_CopiesLibrary(t *testing.T) {
	chdir(t, t.TempDir())
	writeProjectFile(t, filepath.Join("src", "lib", "index.fth"), "export {}")

	root, out, _ := newTestRoot(t, "package", "--dir", "dist-lib")

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Packaged src/lib into dist-lib")
	assert.FileExists(t, filepath.Join("dist-lib", "index.fth"))
	assert.FileExists(t, filepath.Join("dist-lib", "fathom-package.yaml"))
}

// TestPackage_MissingLibrary verifies the error names the config key that
// controls the library location.
func TestPackage_MissingLibrary(t *testing.T) {
	chdir(t, t.TempDir())

	root, _, _ := newTestRoot(t, "package")

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kit.files.lib")
}

// TestSync_WritesManifest verifies sync produces the route manifest under
// the output directory and reports where it wrote.
func TestSync_WritesManifest(t *testing.T) {
	chdir(t, t.TempDir())
	writeProjectFile(t, filepath.Join("src", "routes", "blog", "post.fth"), "")

	root, out, _ := newTestRoot(t, "sync")

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Synced project files into .fathom")
	assert.FileExists(t, filepath.Join(".fathom", "manifest.json"))
}
