package installer

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"dotstrap/internal/logger"
)

// downloadFile downloads the content located at the specified URL and saves it to the destination path.
// It returns an error if the download or file write fails.
func downloadFile(url, destPath string) error {
	// Make an HTTP GET request to the given URL
	resp, err := http.Get(url)
	if err != nil {
		// Wrap and return the error with context
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	// Ensure the response body stream is closed when the function returns,
	// avoiding resource leaks.
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Log error if closing response body fails, but do not return it
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned HTTP status %d", url, resp.StatusCode)
	}

	// Create or truncate the file at destPath to write the downloaded content
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	// Ensure the file is closed after writing to flush contents and release resources
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	// Copy the entire response body (downloaded data) into the destination file
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	// Log debug message confirming successful download and file location
	logger.Debug("[DEBUG] Downloaded %s to %s\n", url, destPath)
	return nil
}

// copyFile copies a file from src to dst, preserving permissions.
// It creates any missing directories in the destination path.
// Returns an error if any step in the process fails.
func copyFile(src, dst string, modeOverride os.FileMode) error {
	// Open the source file
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	// Ensure the destination directory exists
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	// Create the destination file with write permission (mode doesn't matter yet)
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()

	// Copy contents
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}

	// Set permissions: use override if provided, otherwise preserve source mode
	if modeOverride != 0 {
		err = os.Chmod(dst, modeOverride)
	} else if stat, err2 := os.Stat(src); err2 == nil {
		err = os.Chmod(dst, stat.Mode())
	}
	return err
}

// copyTree copies a whole directory tree from src to dst, preserving file
// permissions. Symlinks inside the tree are copied as symlinks rather than
// followed, so an archived home directory round-trips faithfully.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		// Recreate symlinks instead of copying what they point at
		if info.Mode()&os.ModeSymlink != 0 {
			dest, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			return os.Symlink(dest, target)
		}

		return copyFile(path, target, 0)
	})
}
