package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotstrap/internal/config"
)

// writeDotfiles populates a dotfiles source tree with the given file names.
func writeDotfiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# "+name+"\n"), 0644))
	}
}

func TestCreateLinksFreshHome(t *testing.T) {
	home := t.TempDir()
	dotfiles := t.TempDir()
	links := []config.Link{
		{Source: "zshrc", Target: ".zshrc"},
		{Source: "sshconfig", Target: filepath.Join(".ssh", "config")},
	}
	writeDotfiles(t, dotfiles, "zshrc", "sshconfig")

	results := CreateLinks(dotfiles, home, links)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, OutcomeLinked, res.Outcome)

		// The target must be a symlink resolving exactly to its declared source.
		dest, err := os.Readlink(res.Target)
		require.NoError(t, err)
		assert.Equal(t, res.Source, dest)
	}

	// The nested target required its parent directory, created with ssh's
	// required permissions.
	info, err := os.Stat(filepath.Join(home, ".ssh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestCreateLinksNeverClobbers(t *testing.T) {
	home := t.TempDir()
	dotfiles := t.TempDir()
	writeDotfiles(t, dotfiles, "zshrc", "vimrc")
	links := []config.Link{
		{Source: "zshrc", Target: ".zshrc"},
		{Source: "vimrc", Target: ".vimrc"},
	}

	// A live file already sits at one target.
	occupied := filepath.Join(home, ".zshrc")
	original := []byte("# hand-written config, do not lose\n")
	require.NoError(t, os.WriteFile(occupied, original, 0644))

	results := CreateLinks(dotfiles, home, links)

	require.Len(t, results, 2)
	assert.Equal(t, OutcomeSkipped, results[0].Outcome)
	assert.Equal(t, OutcomeLinked, results[1].Outcome)

	// The pre-existing file is byte-identical afterwards, not a symlink.
	got, err := os.ReadFile(occupied)
	require.NoError(t, err)
	assert.Equal(t, original, got)
	info, err := os.Lstat(occupied)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink)
}

func TestCreateLinksSkipsExistingSymlink(t *testing.T) {
	home := t.TempDir()
	dotfiles := t.TempDir()
	writeDotfiles(t, dotfiles, "zshrc")
	links := []config.Link{{Source: "zshrc", Target: ".zshrc"}}

	// Even a dangling symlink occupies the target.
	require.NoError(t, os.Symlink(filepath.Join(home, "gone"), filepath.Join(home, ".zshrc")))

	results := CreateLinks(dotfiles, home, links)

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSkipped, results[0].Outcome)
}

func TestCreateLinksMissingSourceFails(t *testing.T) {
	home := t.TempDir()
	dotfiles := t.TempDir()
	links := []config.Link{{Source: "zshrc", Target: ".zshrc"}}

	results := CreateLinks(dotfiles, home, links)

	require.Len(t, results, 1)
	assert.Equal(t, OutcomeFailed, results[0].Outcome)
	assert.Equal(t, "source file missing", results[0].Reason)

	// No dangling link was left behind.
	_, err := os.Lstat(filepath.Join(home, ".zshrc"))
	assert.True(t, os.IsNotExist(err))
}
