package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapping(t *testing.T) {
	cfg := Default()

	require.Len(t, cfg.Links, 5)

	// The SSH entry is the one whose installed name differs from its source
	// file name, and the only nested target.
	var ssh *Link
	for i := range cfg.Links {
		if cfg.Links[i].Source == "sshconfig" {
			ssh = &cfg.Links[i]
		}
	}
	require.NotNil(t, ssh, "default mapping must contain the sshconfig entry")
	assert.Equal(t, filepath.Join(".ssh", "config"), ssh.Target)

	assert.NotEmpty(t, cfg.Packages)
	assert.NotEmpty(t, cfg.RequiredCommands)
	assert.NotEmpty(t, cfg.NetworkProbe)
	assert.NotEmpty(t, cfg.BackupDir)
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	assert.Equal(t, Default(), Load(""))
}

func TestLoadMergesOverDefaults(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "dotstrap.yaml")
	yaml := `dotstrap:
  packages:
    - cowsay
  backup_dir: .config_backup
`
	require.NoError(t, os.WriteFile(manifest, []byte(yaml), 0644))

	cfg := Load(manifest)

	// Overridden fields take the manifest values.
	assert.Equal(t, []string{"cowsay"}, cfg.Packages)
	assert.Equal(t, ".config_backup", cfg.BackupDir)

	// Everything the manifest did not set keeps the defaults.
	assert.Equal(t, Default().Links, cfg.Links)
	assert.Equal(t, Default().RequiredCommands, cfg.RequiredCommands)
	assert.Equal(t, Default().NetworkProbe, cfg.NetworkProbe)
}

func TestLoadPanicsOnUnreadableManifest(t *testing.T) {
	assert.Panics(t, func() { Load(filepath.Join(t.TempDir(), "missing.yaml")) })
}
