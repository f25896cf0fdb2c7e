package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dotstrap/internal/config"
	"dotstrap/internal/logger"
)

// Restore copies the contents of a backup set back into the home directory.
// The set argument is either the name of a set directory under the backup
// root (e.g. "20260829-153004"), a path to such a directory, or a path to an
// archived snapshot (.tar.gz, .tgz, .tar.bz2, .tar.xz, .zip, .7z).
//
// Restoring follows the same no-clobber posture as linking, with one
// exception: a home path that currently is a symlink into the dotfiles tree
// was put there by this tool, so the restored file may replace it. Any other
// existing path is the user's and is skipped with a warning. The backup set
// itself is never modified.
//
// Returns how many entries were restored. An unknown set is an error.
func Restore(cfg config.Config, home, set string) (int, error) {
	root, err := resolveSet(cfg, home, set)
	if err != nil {
		return 0, err
	}

	logger.Info("[INFO] Restoring from %s\n", root)
	restored := 0

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(home, rel)

		// Decide what occupies the destination right now.
		if info, lerr := os.Lstat(dest); lerr == nil {
			if info.Mode()&os.ModeSymlink == 0 {
				logger.Warn("[WARN] %s exists and is not a managed link, leaving it in place\n", dest)
				return nil
			}
			if !managedSymlink(cfg, dest) {
				logger.Warn("[WARN] %s is a symlink not managed by dotstrap, leaving it in place\n", dest)
				return nil
			}
			// A managed link is ours to replace with the restored original.
			if rerr := os.Remove(dest); rerr != nil {
				logger.Warn("[WARN] Failed to remove managed link %s: %v\n", dest, rerr)
				return nil
			}
		}

		if cerr := copyFile(path, dest, 0); cerr != nil {
			logger.Warn("[WARN] Failed to restore %s: %v\n", dest, cerr)
			return nil
		}
		logger.Success("[OK] Restored %s\n", rel)
		restored++
		return nil
	})
	if err != nil {
		return restored, err
	}

	return restored, nil
}

// resolveSet turns the operator-supplied set name into a directory to walk.
// Archive snapshots are extracted into a scratch directory first; the
// archive itself stays untouched.
func resolveSet(cfg config.Config, home, set string) (string, error) {
	candidate := set
	if !filepath.IsAbs(candidate) {
		// Bare set names live under the backup root; fall back to treating
		// the argument as a relative path if nothing is there.
		under := filepath.Join(home, cfg.BackupDir, set)
		if _, err := os.Lstat(under); err == nil {
			candidate = under
		}
	}

	info, err := os.Lstat(candidate)
	if err != nil {
		return "", fmt.Errorf("unknown backup set %q", set)
	}

	if info.IsDir() {
		return candidate, nil
	}

	// A regular file must be an archived snapshot.
	scratch, err := os.MkdirTemp("", "dotstrap-restore-")
	if err != nil {
		return "", fmt.Errorf("failed to create extraction directory: %w", err)
	}
	return ExtractSnapshot(candidate, scratch)
}

// managedSymlink reports whether the symlink at path points into the dotfiles
// tree, i.e. was created by this tool.
func managedSymlink(cfg config.Config, path string) bool {
	dest, err := os.Readlink(path)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	prefix := cfg.DotfilesDir + string(os.PathSeparator)
	return strings.HasPrefix(dest, prefix)
}
