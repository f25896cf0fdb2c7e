package installer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStamp = time.Date(2026, 8, 29, 15, 30, 4, 0, time.UTC)

func TestBackupTargetsCopiesExistingFiles(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, ".dotfiles_backup")

	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), []byte("old zshrc\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ssh"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ssh", "config"), []byte("Host *\n"), 0600))

	set, err := BackupTargets(home, root, testStamp, []string{".zshrc", ".vimrc", ".ssh"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "20260829-153004"), set)

	// Existing paths were copied, including the directory tree.
	got, err := os.ReadFile(filepath.Join(set, ".zshrc"))
	require.NoError(t, err)
	assert.Equal(t, "old zshrc\n", string(got))
	got, err = os.ReadFile(filepath.Join(set, ".ssh", "config"))
	require.NoError(t, err)
	assert.Equal(t, "Host *\n", string(got))

	// A target that does not exist in the home is simply absent from the set.
	_, err = os.Lstat(filepath.Join(set, ".vimrc"))
	assert.True(t, os.IsNotExist(err))

	// The live files are untouched.
	_, err = os.Stat(filepath.Join(home, ".zshrc"))
	assert.NoError(t, err)
}

func TestBackupTargetsPreservesCollidingSet(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, ".dotfiles_backup")

	// A set with the same stamp already exists, holding an earlier backup.
	old := filepath.Join(root, testStamp.Format("20060102-150405"))
	require.NoError(t, os.MkdirAll(old, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(old, ".zshrc"), []byte("from the first run\n"), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(home, ".zshrc"), []byte("current\n"), 0644))

	set, err := BackupTargets(home, root, testStamp, []string{".zshrc"})
	require.NoError(t, err)

	// Both sets exist afterwards: the renamed old one and the fresh one.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// The old content survived under the suffixed name.
	preservedContent := false
	for _, entry := range entries {
		if entry.Name() == filepath.Base(set) {
			continue
		}
		got, err := os.ReadFile(filepath.Join(root, entry.Name(), ".zshrc"))
		require.NoError(t, err)
		assert.Equal(t, "from the first run\n", string(got))
		preservedContent = true
	}
	assert.True(t, preservedContent, "renamed set must still hold the earlier backup")
}

func TestBackupTargetsPreservesSymlinksInsideDirectories(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, ".dotfiles_backup")

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ssh"), 0700))
	require.NoError(t, os.Symlink("/somewhere/else", filepath.Join(home, ".ssh", "alias")))

	set, err := BackupTargets(home, root, testStamp, []string{".ssh"})
	require.NoError(t, err)

	dest, err := os.Readlink(filepath.Join(set, ".ssh", "alias"))
	require.NoError(t, err)
	assert.Equal(t, "/somewhere/else", dest)
}
