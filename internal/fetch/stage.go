package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StageArchives extracts downloaded archives and normalizes their content
// into the staging directory. A delivery that can't be extracted or
// normalized is logged and deleted; one broken delivery never blocks the
// rest of the batch.
func (f *Fetcher) StageArchives(archives []string) ([]Source, error) {
	ediDir := f.StagingDir()

	var sources []Source
	for _, archive := range archives {
		extracted, name, err := unzip(archive, ediDir)
		if err != nil {
			f.logger.Error("failed to unzip file, skipping", "path", archive, "error", err)
			if err := os.Remove(archive); err != nil {
				return nil, fmt.Errorf("failed to delete non unzippable file %s: %w", archive, err)
			}
			continue
		}
		if err := os.Remove(archive); err != nil {
			return nil, fmt.Errorf("failed to delete obsolete zip archive %s: %w", archive, err)
		}

		staged, err := normalizeToStaging(extracted, ediDir, name)
		if err != nil {
			f.logger.Error("failed to normalize source file, skipping",
				"name", name, "path", extracted, "error", err)
			if err := os.Remove(extracted); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to delete non convertable file %s: %w", extracted, err)
			}
			continue
		}

		sources = append(sources, Source{Path: staged, Name: name})
	}

	return sources, nil
}

// StageUploads scans the upload directory for manually delivered files and
// stages them. Uploaded names are decorated with a random prefix so two
// people uploading price.txt don't overwrite each other's delivery.
func (f *Fetcher) StageUploads() ([]Source, error) {
	uploadDir := f.UploadDir()
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploads dir: %w", err)
	}

	ediDir := f.StagingDir()

	var sources []Source
	for _, entry := range entries {
		path := filepath.Join(uploadDir, entry.Name())
		name := entry.Name()

		if entry.IsDir() {
			f.logger.Warn("uploads dir has unexpected subdirectory", "name", name)
			continue
		}

		if strings.HasSuffix(name, ".zip") {
			extracted, extractedName, err := unzip(path, ediDir)
			if err != nil {
				f.logger.Error("failed to unzip uploaded file, skipping", "path", path, "error", err)
				if err := os.Remove(path); err != nil {
					return nil, fmt.Errorf("failed to delete non unzippable uploaded file %s: %w", path, err)
				}
				continue
			}
			if err := os.Remove(path); err != nil {
				return nil, fmt.Errorf("failed to delete obsolete zip archive %s: %w", path, err)
			}
			path, name = extracted, extractedName
		}

		staged := randomPrefix(name)
		stagedPath, err := normalizeToStaging(path, ediDir, staged)
		if err != nil {
			f.logger.Warn("failed to convert uploaded source file, skipping",
				"name", name, "path", path, "error", err)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to delete non convertable file %s: %w", path, err)
			}
			continue
		}

		sources = append(sources, Source{Path: stagedPath, Name: staged})
	}

	return sources, nil
}
