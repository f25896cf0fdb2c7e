package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstalledTracksMarkerPresence(t *testing.T) {
	marker := filepath.Join(t.TempDir(), MarkerFile)

	assert.False(t, Installed(marker))

	Save(marker, &Record{CompletedAt: time.Now()})

	assert.True(t, Installed(marker))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	marker := filepath.Join(t.TempDir(), MarkerFile)
	completed := time.Date(2026, 8, 29, 15, 30, 4, 0, time.UTC)

	Save(marker, &Record{
		CompletedAt: completed,
		BackupSet:   "/home/u/.dotfiles_backup/20260829-153004",
		Links: []LinkRecord{
			{Source: "/home/u/.dotfiles/zshrc", Target: "/home/u/.zshrc", Outcome: "linked"},
			{Source: "/home/u/.dotfiles/vimrc", Target: "/home/u/.vimrc", Outcome: "skipped", Reason: "target already exists"},
		},
		Packages: map[string]string{"jq": "installed"},
	})

	rec := Load(marker)
	require.NotNil(t, rec)
	assert.True(t, completed.Equal(rec.CompletedAt))
	assert.Equal(t, "/home/u/.dotfiles_backup/20260829-153004", rec.BackupSet)
	require.Len(t, rec.Links, 2)
	assert.Equal(t, "skipped", rec.Links[1].Outcome)
	assert.Equal(t, "installed", rec.Packages["jq"])
}

func TestLoadMissingMarkerReturnsEmptyRecord(t *testing.T) {
	rec := Load(filepath.Join(t.TempDir(), "nope"))

	require.NotNil(t, rec)
	assert.NotNil(t, rec.Packages)
	assert.Empty(t, rec.Links)
}
