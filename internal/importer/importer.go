// Package importer drives one import run: classify each incoming interchange
// file, skip re-deliveries, decode the records, merge them into the
// category-partitioned stores and archive the source file under its party.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/talotukku/edimport/internal/config"
	"github.com/talotukku/edimport/internal/edi"
	"github.com/talotukku/edimport/internal/store"
)

// Directory names under the data root and under each party's home.
const (
	EdiDirName      = "edi"
	UploadDirName   = "uploads"
	DownloadDirName = "downloads"
)

// Importer merges decoded interchange files into the persisted stores. It is
// strictly sequential: one file is fully decoded, warned about and merged
// before the next begins.
type Importer struct {
	cfg       *config.Config
	store     *store.Store
	logger    *slog.Logger
	runLog    io.Writer
	languages []edi.Language

	productsImported bool
}

// New creates an importer. The run log collects operator-facing warnings for
// the whole run. New fails if the decoder width tables have drifted from
// their documented line lengths; nothing should read a file after that.
func New(cfg *config.Config, st *store.Store, runLog io.Writer, logger *slog.Logger) (*Importer, error) {
	if err := edi.SelfCheck(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if runLog == nil {
		runLog = io.Discard
	}

	languages, err := cfg.LanguageCodes()
	if err != nil {
		return nil, err
	}

	return &Importer{
		cfg:       cfg,
		store:     st,
		logger:    logger,
		runLog:    runLog,
		languages: languages,
	}, nil
}

// ProductsImported reports whether any file in this run actually imported
// products. Search index rebuilding is pointless otherwise.
func (im *Importer) ProductsImported() bool { return im.productsImported }

// ImportFile classifies and imports a single interchange file. It returns
// the detected file type and whether the file was actually merged (false
// for re-deliveries and unrecognized files). Unrecognized files are deleted
// so garbage does not accumulate in the work directory.
func (im *Importer) ImportFile(ctx context.Context, path, name string) (edi.FileType, bool, error) {
	fmt.Fprintf(im.runLog, "%s import started on: %s\n",
		name, time.Now().UTC().Format("02.01.06 15:04:05"))

	kind, err := edi.Classify(path)
	if err != nil {
		return edi.FileUnrecognized, false, fmt.Errorf("failed to classify %s: %w", path, err)
	}

	switch kind {
	case edi.FileProduct:
		imported, err := im.importProductFile(ctx, path, name)
		if err != nil {
			return kind, false, err
		}
		if imported {
			im.productsImported = true
		}
		return kind, imported, nil

	case edi.FilePrice:
		imported, err := im.importPriceFile(ctx, path, name)
		return kind, imported, err

	case edi.FileDiscount:
		imported, err := im.importDiscountFile(ctx, path, name)
		return kind, imported, err
	}

	// Don't leave obsolete files hanging around.
	im.logger.Error("deleting file not recognized as product, price or discount interchange",
		"path", path)
	if err := os.Remove(path); err != nil {
		return kind, false, fmt.Errorf("failed to delete unrecognized file %s: %w", path, err)
	}
	return kind, false, nil
}

// importProductFile runs the duplicate gate and then decodes the file once
// per configured language, each pass producing that language's translation
// subset. A failed language pass is logged and the remaining passes still
// run; the file only counts as imported if at least one pass succeeded.
func (im *Importer) importProductFile(ctx context.Context, path, name string) (bool, error) {
	dup, err := im.AlreadyImported(path, edi.OwnershipSeller)
	if err != nil {
		return false, fmt.Errorf("failed to compare new and archived product source files: %w", err)
	}
	if dup {
		im.logger.Info("skipping re-delivered product source file", "path", path)
		return false, nil
	}

	im.logger.Info("running product update from source file", "path", path)

	var sellerDir string
	for _, lang := range im.languages {
		dir, err := im.importProducts(ctx, path, lang)
		if err != nil {
			im.logger.Warn("failed to write products",
				"path", path, "lang", lang.Name(), "error", err)
			continue
		}
		sellerDir = dir
	}
	if sellerDir == "" {
		return false, fmt.Errorf("no language pass of %s succeeded", path)
	}

	if err := moveFile(path, sellerDir, EdiDirName, name); err != nil {
		return false, err
	}
	return true, nil
}

func (im *Importer) importPriceFile(ctx context.Context, path, name string) (bool, error) {
	dup, err := im.AlreadyImported(path, edi.OwnershipSeller)
	if err != nil {
		return false, fmt.Errorf("failed to compare new and archived price source files: %w", err)
	}
	if dup {
		im.logger.Info("skipping re-delivered price source file", "path", path)
		return false, nil
	}

	sellerDir, err := im.importPrices(ctx, path)
	if err != nil {
		return false, fmt.Errorf("failed to write prices: %w", err)
	}

	if err := moveFile(path, sellerDir, EdiDirName, name); err != nil {
		return false, err
	}
	return true, nil
}

func (im *Importer) importDiscountFile(ctx context.Context, path, _ string) (bool, error) {
	dup, err := im.AlreadyImported(path, edi.OwnershipBuyer)
	if err != nil {
		return false, fmt.Errorf("failed to compare new and archived discount source files: %w", err)
	}
	if dup {
		im.logger.Info("skipping re-delivered discount source file", "path", path)
		return false, nil
	}

	buyerDir, err := im.importDiscounts(ctx, path)
	if err != nil {
		return false, fmt.Errorf("failed to write discounts: %w", err)
	}

	// One discounts file per buyer+seller relationship, so a fixed name.
	if err := moveFile(path, buyerDir, EdiDirName, "discounts.txt"); err != nil {
		return false, err
	}
	return true, nil
}

// moveFile archives a processed source file under a party directory,
// creating the subdirectory when needed.
func moveFile(from, targetDir, subdir, name string) error {
	dir := filepath.Join(targetDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir %s: %w", dir, err)
	}
	to := filepath.Join(dir, name)
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", from, to, err)
	}
	return nil
}
