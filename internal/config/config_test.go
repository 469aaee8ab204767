package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes content as the config file in a temp directory and
// returns its path. Helper used by all loader tests.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fathom.config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_MissingFileUsesDefaults verifies the zero-config behavior:
// a missing file resolves to framework defaults without error.
func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "fathom.config.json"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Kit.Adapter)
	assert.Equal(t, ".fathom", cfg.Kit.Outdir)
	assert.Equal(t, "src/lib", cfg.Kit.Files.Lib)
	assert.Equal(t, "src/routes", cfg.Kit.Files.Routes)
	assert.Equal(t, 5173, cfg.Kit.Serve.Port)
}

// TestLoad_JSONCComments verifies that line and block comments are stripped
// before parsing — the config format is JSONC, not strict JSON.
func TestLoad_JSONCComments(t *testing.T) {
	path := writeConfig(t, `{
		// deployment target
		"kit": {
			"adapter": "node", /* default adapter */
			"serve": { "port": 4000 }
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "node", cfg.Kit.Adapter)
	assert.Equal(t, 4000, cfg.Kit.Serve.Port)
}

// TestLoad_MergesOverDefaults verifies that fields omitted from the file
// keep their default values rather than zeroing out.
func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `{"kit": {"adapter": "static"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "static", cfg.Kit.Adapter)
	// Untouched defaults survive the merge.
	assert.Equal(t, ".fathom", cfg.Kit.Outdir)
	assert.Equal(t, 5173, cfg.Kit.Serve.Port)
}

// TestLoad_MalformedFileReturnsSyntaxError verifies that a malformed file
// surfaces as *SyntaxError with a usable source position, not as a generic
// error. The CLI relies on this type to route the failure around the
// normalizer.
func TestLoad_MalformedFileReturnsSyntaxError(t *testing.T) {
	path := writeConfig(t, "{\n  \"kit\": {\n")

	_, err := Load(path)
	require.Error(t, err)

	synErr, ok := err.(*SyntaxError)
	require.True(t, ok, "expected *SyntaxError, got %T", err)
	assert.Equal(t, path, synErr.Path)
	assert.GreaterOrEqual(t, synErr.Line, 1)
	assert.Contains(t, synErr.Error(), path)
}

// TestLoad_TypeErrorIsSyntaxError verifies that a wrong-typed field (a
// string where a number belongs) is also classified as a config syntax
// problem — it is a defect in the operator's file either way.
func TestLoad_TypeErrorIsSyntaxError(t *testing.T) {
	path := writeConfig(t, `{"kit": {"serve": {"port": "not-a-number"}}}`)

	_, err := Load(path)
	require.Error(t, err)
	_, ok := err.(*SyntaxError)
	assert.True(t, ok, "expected *SyntaxError, got %T", err)
}

// TestLoad_FSConfig verifies strict/allow parsing for the dev server's
// filesystem rules.
func TestLoad_FSConfig(t *testing.T) {
	path := writeConfig(t, `{
		"kit": {
			"serve": {
				"fs": { "strict": false, "allow": ["../shared", "./vendor"] }
			}
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Kit.Serve.FS.Strict)
	assert.False(t, *cfg.Kit.Serve.FS.Strict)
	assert.Equal(t, []string{"../shared", "./vendor"}, cfg.Kit.Serve.FS.Allow)
}

// TestLoad_RereadsEveryCall verifies the no-caching rule: an edit between
// two Load calls is picked up by the second call.
func TestLoad_RereadsEveryCall(t *testing.T) {
	path := writeConfig(t, `{"kit": {"adapter": "node"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "node", cfg.Kit.Adapter)

	require.NoError(t, os.WriteFile(path, []byte(`{"kit": {"adapter": "static"}}`), 0o644))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "static", cfg.Kit.Adapter)
}
