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

// importPrices decodes a price file and merges it. Prices carry no
// language, so unlike products the file is processed exactly once.
func (im *Importer) importPrices(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open prices source file: %w", err)
	}
	defer f.Close()

	var (
		warnings    []string
		sellerDir   string
		sellerID    string
		categorized = map[edi.Category]map[string]*edi.Price{}
	)

	scanner := bufio.NewScanner(f)
	for i := 0; scanner.Scan(); i++ {
		line, lineWarnings := edi.ReadLine(scanner.Text(), i, edi.PriceLineLen)
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
			p, entryWarnings, err := edi.DecodePrice(line.Text)
			warnings = append(warnings, entryWarnings...)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("price read: %v", err))
				continue
			}

			m, ok := categorized[p.Category]
			if !ok {
				m = map[string]*edi.Price{}
				categorized[p.Category] = m
			}
			m[p.Identifier] = p
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read prices source file: %w", err)
	}

	im.logWarnings(path, warnings)

	if sellerDir == "" {
		return "", fmt.Errorf("price file %s names no seller header", path)
	}

	if im.cfg.Import.SQLite {
		if err := im.persistPrices(ctx, sellerID, categorized); err != nil {
			return "", err
		}
	}
	if im.cfg.Import.JSON {
		if err := im.snapshotPrices(sellerDir, categorized); err != nil {
			return "", err
		}
	}

	return sellerDir, nil
}

func (im *Importer) persistPrices(ctx context.Context, sellerID string,
	categorized map[edi.Category]map[string]*edi.Price) error {

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

	var units, priceGroups, discountGroups []string
	for _, m := range categorized {
		for _, p := range m {
			units = append(units, p.Unit)
			priceGroups = append(priceGroups, p.PriceGroup)
			discountGroups = append(discountGroups, p.DiscountGroup)
		}
	}

	slices.Sort(units)
	for _, u := range slices.Compact(units) {
		if err := store.InsertUnit(tx, u); err != nil {
			return err
		}
	}
	slices.Sort(priceGroups)
	for _, g := range slices.Compact(priceGroups) {
		if err := store.InsertPriceGroup(tx, g); err != nil {
			return err
		}
	}
	slices.Sort(discountGroups)
	for _, g := range slices.Compact(discountGroups) {
		if err := store.InsertDiscountGroup(tx, g); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit price lookups: %w", err)
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
			if err := store.UpsertPrice(tx, sellerID, m[id]); err != nil {
				tx.Rollback()
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit %s prices: %w", cat, err)
		}
	}

	return nil
}

func (im *Importer) snapshotPrices(sellerDir string,
	categorized map[edi.Category]map[string]*edi.Price) error {

	pricesDir := filepath.Join(sellerDir, "prices")

	for _, cat := range edi.Categories() {
		m := categorized[cat]
		if len(m) == 0 {
			continue
		}

		path := filepath.Join(pricesDir, cat.Name()+".json")
		snapshot, err := loadSnapshotMap[*edi.Price](path)
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
