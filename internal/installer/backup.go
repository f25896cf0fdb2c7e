package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"dotstrap/internal/logger"
)

// backupStampFormat names each backup set after the wall-clock time of the
// run that created it, e.g. 20260829-153004.
const backupStampFormat = "20060102-150405"

// BackupTargets archives every listed home-relative path that currently
// exists into a fresh timestamped backup set under backupRoot, and returns
// the absolute path of the set.
//
// Collision policy: if a set with the same stamp already exists (a re-run
// within the same second, or an injected clock), the old set is renamed with
// its own modification epoch as a suffix before the new one is created.
// Backup sets accumulate; nothing under the backup root is ever overwritten.
//
// Individual copy failures are logged as warnings and skipped: the live file
// stays untouched either way, so a missing copy only narrows the safety net,
// it does not endanger data. Only a failure to create the set itself is
// returned as an error.
func BackupTargets(home, backupRoot string, now time.Time, targets []string) (string, error) {
	if err := os.MkdirAll(backupRoot, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup root %s: %w", backupRoot, err)
	}

	set := filepath.Join(backupRoot, now.Format(backupStampFormat))

	// Preserve a colliding set from an earlier run by renaming it with its
	// own modification epoch, so historical backups are never silently lost.
	if info, err := os.Stat(set); err == nil {
		preserved := set + "." + strconv.FormatInt(info.ModTime().Unix(), 10)
		logger.Info("[INFO] Existing backup set found, preserving it as %s\n", preserved)
		if err := os.Rename(set, preserved); err != nil {
			return "", fmt.Errorf("failed to preserve existing backup set %s: %w", set, err)
		}
	}

	if err := os.MkdirAll(set, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup set %s: %w", set, err)
	}
	logger.Info("[INFO] Backing up existing configuration to %s\n", set)

	for _, rel := range targets {
		src := filepath.Join(home, rel)

		// Lstat so an existing symlink counts as present without following it
		info, err := os.Lstat(src)
		if err != nil {
			logger.Debug("[DEBUG] Nothing to back up at %s\n", src)
			continue
		}

		dst := filepath.Join(set, rel)
		if info.IsDir() {
			err = copyTree(src, dst)
		} else {
			err = copyFile(src, dst, 0)
		}
		if err != nil {
			// Best effort: the live file is still in place, only the copy is missing
			logger.Warn("[WARN] Failed to back up %s: %v\n", src, err)
			continue
		}
		logger.Success("[OK] Backed up %s\n", rel)
	}

	return set, nil
}
