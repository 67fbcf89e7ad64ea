package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasSaneThresholds(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "v1", cfg.Policy.PolicyVersions["default"])
	assert.InDelta(t, 0.10, cfg.Policy.NearCriticalAlpha, 1e-9)
}

func TestLoadFromFileOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dkg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy:\n  near_critical_alpha: 0.25\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, cfg.Policy.NearCriticalAlpha, 1e-9)
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Storage.SnapshotDir, cfg.Storage.SnapshotDir)
}
