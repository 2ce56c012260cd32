package importer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/talotukku/edimport/internal/edi"
	"github.com/talotukku/edimport/internal/store"
)

// importProducts decodes one product file for a single language and merges
// the result. The same physical file is handed here once per configured
// language; lines carrying another language fail decoding and fall out as
// warnings, leaving exactly this language's translation subset.
func (im *Importer) importProducts(ctx context.Context, path string, lang edi.Language) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open products source file: %w", err)
	}
	defer f.Close()

	im.logger.Debug("adding products", "lang", lang.Name())

	var (
		warnings    []string
		sellerDir   string
		sellerID    string
		categorized = map[edi.Category]map[string]*edi.Product{}
	)

	scanner := bufio.NewScanner(f)
	for i := 0; scanner.Scan(); i++ {
		line, lineWarnings := edi.ReadLine(scanner.Text(), i, edi.ProductLineLen)
		warnings = append(warnings, lineWarnings...)
		if line == nil {
			continue
		}

		switch line.Kind {
		case edi.LineBuyer:
			continue

		case edi.LineSeller:
			party, home, err := edi.CreateParty(im.cfg.Dir, line.Text)
			if err != nil {
				return "", fmt.Errorf("failed to create seller dir: %w", err)
			}
			sellerDir, sellerID = home, party.ID

			if im.cfg.SellerByID(sellerID) == nil {
				warnings = append(warnings, fmt.Sprintf(
					"unable to find config for seller id %s, skipping seller", sellerID))
			}

		case edi.LineEntry:
			p, entryWarnings, err := edi.DecodeProduct(line.Text, &lang)
			warnings = append(warnings, entryWarnings...)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("product read: %v", err))
				continue
			}

			m, ok := categorized[p.Category]
			if !ok {
				m = map[string]*edi.Product{}
				categorized[p.Category] = m
			}
			m[p.Identifier] = p
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read products source file: %w", err)
	}

	im.logWarnings(path, warnings)

	if sellerDir == "" {
		return "", fmt.Errorf("product file %s names no seller header", path)
	}

	if im.cfg.Import.SQLite {
		if err := im.persistProducts(ctx, sellerID, lang, categorized); err != nil {
			return "", err
		}
	}
	if im.cfg.Import.JSON {
		if err := im.snapshotProducts(sellerDir, lang, categorized); err != nil {
			return "", err
		}
	}

	return sellerDir, nil
}

// persistProducts applies decoded products to the relational store: the
// lookup domains and generic product rows in one transaction, then each
// category's translations and seller products in a transaction of their own.
func (im *Importer) persistProducts(ctx context.Context, sellerID string, lang edi.Language,
	categorized map[edi.Category]map[string]*edi.Product) error {

	tx, err := im.store.BeginSellers(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if sc := im.cfg.SellerByID(sellerID); sc != nil {
		if err := store.InsertSeller(tx, sc.ID, sc.Name); err != nil {
			return err
		}
	}

	var units, discountGroups []string
	hasProducts := false
	for _, m := range categorized {
		for _, p := range m {
			hasProducts = true
			units = append(units, p.Unit)
			if p.DiscountGroup != nil {
				discountGroups = append(discountGroups, *p.DiscountGroup)
			}
		}
	}

	slices.Sort(units)
	for _, u := range slices.Compact(units) {
		if err := store.InsertUnit(tx, u); err != nil {
			return err
		}
	}

	if hasProducts {
		if err := store.InsertLanguage(tx, lang); err != nil {
			return err
		}
	}

	slices.Sort(discountGroups)
	for _, g := range slices.Compact(discountGroups) {
		if err := store.InsertDiscountGroup(tx, g); err != nil {
			return err
		}
	}

	for _, cat := range edi.Categories() {
		for _, id := range sortedKeys(categorized[cat]) {
			if err := store.UpsertGenericProduct(tx, categorized[cat][id]); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product lookups: %w", err)
	}

	for _, cat := range edi.Categories() {
		m := categorized[cat]
		if len(m) == 0 {
			continue
		}

		tx, err := im.store.BeginSellers(ctx)
		if err != nil {
			return err
		}

		for _, id := range sortedKeys(m) {
			if err := store.UpsertTranslation(tx, sellerID, m[id]); err != nil {
				tx.Rollback()
				return err
			}
			if err := store.UpsertProduct(tx, sellerID, m[id]); err != nil {
				tx.Rollback()
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit %s products: %w", cat, err)
		}
	}

	return nil
}

// snapshotProducts overlays the decoded products into each touched
// category's snapshot and rewrites it whole: later deliveries win per
// identifier, untouched identifiers survive.
func (im *Importer) snapshotProducts(sellerDir string, lang edi.Language,
	categorized map[edi.Category]map[string]*edi.Product) error {

	productsDir := filepath.Join(sellerDir, "products")

	for _, cat := range edi.Categories() {
		m := categorized[cat]
		if len(m) == 0 {
			continue
		}

		path := filepath.Join(productsDir, fmt.Sprintf("%s.%s.json", cat.Name(), lang.Name()))
		snapshot, err := loadSnapshotMap[*edi.Product](path)
		if err != nil {
			return err
		}
		for id, p := range m {
			snapshot[id] = p
		}
		if err := writeSnapshot(path, snapshot); err != nil {
			return err
		}
	}

	return nil
}

// sortedKeys keeps map walks deterministic so row writes and error output
// are stable run to run.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
