package fetch

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// unzip extracts a single-file zip archive into destDir and returns the
// extracted path and the archived file's name. Sellers deliver one
// interchange file per archive; anything else is a malformed delivery.
func unzip(archivePath, destDir string) (string, string, error) {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to open zip archive %s: %w", archivePath, err)
	}
	defer archive.Close()

	if len(archive.File) != 1 {
		return "", "", fmt.Errorf("zip archive %s has unexpected amount of files in it (%d), one file expected",
			archivePath, len(archive.File))
	}

	entry := archive.File[0]
	name := filepath.Base(filepath.Clean(entry.Name))
	if name == "." || name == string(filepath.Separator) {
		return "", "", fmt.Errorf("unable to read file name from zip file %s", archivePath)
	}

	src, err := entry.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open zipped file %s: %w", entry.Name, err)
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create unzip target dir: %w", err)
	}

	path := filepath.Join(destDir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create extraction target %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to extract %s from %s: %w", entry.Name, archivePath, err)
	}

	return path, name, nil
}
