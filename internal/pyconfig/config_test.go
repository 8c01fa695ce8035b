package pyconfig_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/pyconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := pyconfig.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.ElementsMatch(t, []string{"srp", "ocp", "lsp", "isp", "dip", "kiss", "dry"}, cfg.EnabledAnalyzers)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := pyconfig.Load(filepath.Join(dir, "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.UseCache)
}

func TestValidateRejectsUnknownAnalyzer(t *testing.T) {
	cfg := pyconfig.DefaultConfig()
	cfg.EnabledAnalyzers = []string{"srp", "made_up"}
	require.Error(t, cfg.Validate())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := pyconfig.DefaultConfig()
	cfg.CacheDir = "custom-cache"
	require.NoError(t, cfg.Save(path))

	loaded, err := pyconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-cache", loaded.CacheDir)
}
