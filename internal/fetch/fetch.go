// Package fetch acquires interchange files and stages them for import:
// bulk HTTP download from configured seller URLs, manual uploads dropped
// into the uploads directory, single-file zip extraction and character
// set normalization into the staging directory.
package fetch

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/talotukku/edimport/internal/config"
	"github.com/talotukku/edimport/internal/importer"
)

// Source is one staged interchange file ready for import. Name is the
// delivery name the file is archived under after a successful import; Path
// is where the normalized content sits in the staging directory.
type Source struct {
	Path string
	Name string
}

// Fetcher acquires and stages interchange files under the data directory.
type Fetcher struct {
	cfg    *config.Config
	client *http.Client
	logger *slog.Logger
}

// New creates a fetcher. Seller endpoints serve static files, so one
// generously timed client covers both fast mirrors and the slow ones.
func New(cfg *config.Config, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: 90 * time.Second},
		logger: logger,
	}
}

// StagingDir is where normalized files wait for import.
func (f *Fetcher) StagingDir() string {
	return filepath.Join(f.cfg.Dir, importer.EdiDirName)
}

// DownloadDir holds raw downloads before extraction and normalization.
func (f *Fetcher) DownloadDir() string {
	return filepath.Join(f.cfg.Dir, importer.DownloadDirName)
}

// UploadDir is watched and scanned for manually delivered files.
func (f *Fetcher) UploadDir() string {
	return filepath.Join(f.cfg.Dir, importer.UploadDirName)
}

// randomPrefix decorates staged file names so two deliveries with the same
// source name never collide in the staging directory.
func randomPrefix(name string) string {
	return uuid.NewString()[:8] + "-" + name
}
