package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"dotstrap/internal/logger"
)

// ExtractSnapshot unpacks an archived backup snapshot into dest and returns
// the directory holding the extracted tree. Backup sets normally live on disk
// as plain directories, but sets that were compacted or copied off-machine
// come back as archives; all the common formats are accepted so a snapshot is
// restorable regardless of what produced it.
func ExtractSnapshot(src, dest string) (string, error) {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] Snapshot format is zip\n")
		return extractZip(src, dest)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] Snapshot format is 7z\n")
		return extract7z(src, dest)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] Snapshot format is tar\n")
		return extractTarSnapshot(src, dest)
	default:
		return "", fmt.Errorf("unsupported snapshot format: %s", src)
	}
}

// extractTarSnapshot handles tar and compressed tar variants.
func extractTarSnapshot(src, dest string) (string, error) {
	logger.Debug("[DEBUG] Extracting %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return "", err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)

	// Iterate over each entry in the archive. Dotfiles snapshots can contain
	// symlinks (a forced re-run backs up links from the previous run), so
	// those are recreated rather than skipped.
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return "", err
		}

		target, err := snapshotEntryPath(dest, hdr.Name)
		if err != nil {
			return "", err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return "", err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return "", err
			}
			outFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode))
			if err != nil {
				return "", err
			}
			if _, err := io.Copy(outFile, tr); err != nil {
				outFile.Close()
				return "", err
			}
			outFile.Close()
		}
	}
	return dest, nil
}

// extractZip extracts a .zip snapshot.
func extractZip(src, dest string) (string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, f := range r.File {
		path, err := snapshotEntryPath(dest, f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return "", err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", err
		}
		outFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			return "", err
		}
		rc, err := f.Open()
		if err != nil {
			outFile.Close()
			return "", err
		}
		_, err = io.Copy(outFile, rc)
		rc.Close()
		outFile.Close()
		if err != nil {
			return "", err
		}
	}
	return dest, nil
}

// extract7z handles .7z extraction using the sevenzip library.
func extract7z(src, dest string) (string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open 7z snapshot: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		path, err := snapshotEntryPath(dest, f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return "", err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", err
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		outFile, err := os.Create(path)
		if err != nil {
			rc.Close()
			return "", err
		}
		_, err = io.Copy(outFile, rc)
		rc.Close()
		outFile.Close()
		if err != nil {
			return "", err
		}
	}
	return dest, nil
}

// snapshotEntryPath joins an archive entry name onto the extraction root,
// rejecting names that would escape it (../ traversal in a crafted archive).
func snapshotEntryPath(dest, name string) (string, error) {
	path := filepath.Join(dest, name)
	if path != dest && !strings.HasPrefix(path, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("snapshot entry %q escapes extraction directory", name)
	}
	return path, nil
}
