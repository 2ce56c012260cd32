package importer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/talotukku/edimport/internal/edi"
	"github.com/talotukku/edimport/internal/store"
)

// importDiscounts decodes a discount file and merges it for one buyer of one
// seller. Rows referencing a discount or price group the relational store has
// never seen in any product or price delivery are dropped with a warning:
// such a row can't be joined to anything a customer could buy.
func (im *Importer) importDiscounts(ctx context.Context, path string) (string, error) {
	discountGroups, err := im.store.DiscountGroups()
	if err != nil {
		return "", err
	}
	priceGroups, err := im.store.PriceGroups()
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open discounts source file: %w", err)
	}
	defer f.Close()

	var (
		warnings  []string
		sellerDir string
		sellerID  string
		buyerID   string
		discounts = map[string]*edi.Discount{}
	)

	scanner := bufio.NewScanner(f)
	for i := 0; scanner.Scan(); i++ {
		line, lineWarnings := edi.ReadLine(scanner.Text(), i, edi.DiscountLineLen)
		warnings = append(warnings, lineWarnings...)
		if line == nil {
			continue
		}

		switch line.Kind {
		case edi.LineBuyer:
			party, err := edi.PartyFromLine(line.Text)
			if err != nil {
				return "", fmt.Errorf("failed to read buyer header: %w", err)
			}
			buyerID = party.ID

		case edi.LineSeller:
			party, home, err := edi.CreateParty(im.cfg.Dir, line.Text)
			if err != nil {
				return "", fmt.Errorf("failed to create seller dir: %w", err)
			}
			sellerDir, sellerID = home, party.ID

		case edi.LineEntry:
			d, err := edi.DecodeDiscount(line.Text)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("discount read: %v", err))
				continue
			}

			switch {
			case !slices.Contains(discountGroups, d.DiscountGroup):
				warnings = append(warnings, fmt.Sprintf(
					"[%s]: Ignoring as discount group was not found", d.DiscountGroup))
			case !slices.Contains(priceGroups, d.PriceGroup):
				warnings = append(warnings, fmt.Sprintf(
					"[%s]: Ignoring as price group '%s' was not found", d.DiscountGroup, d.PriceGroup))
			default:
				discounts[d.DiscountGroup] = d
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read discounts source file: %w", err)
	}

	im.logWarnings(path, warnings)

	if sellerDir == "" || buyerID == "" {
		return "", fmt.Errorf("discount file %s does not name both parties", path)
	}
	if _, err := os.Stat(sellerDir); err != nil {
		return "", fmt.Errorf("unknown supplier %s: no prior deliveries under %s", sellerID, sellerDir)
	}

	// Surrogate id: the supplier-issued buyer id is only unique within one
	// seller's customer base.
	surrogateID := buyerID + sellerID

	if im.cfg.Import.SQLite {
		tx, err := im.store.BeginBuyers(ctx)
		if err != nil {
			return "", err
		}
		defer tx.Rollback()

		if err := store.InsertBuyer(tx, surrogateID, uuid.NewString(), buyerID, im.cfg.VATPercent); err != nil {
			return "", err
		}
		for _, group := range sortedKeys(discounts) {
			if err := store.UpsertDiscount(tx, surrogateID, sellerID, discounts[group]); err != nil {
				return "", err
			}
		}

		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("failed to commit discounts: %w", err)
		}
	}

	buyerDir := filepath.Join(sellerDir, "buyers", buyerID)

	if im.cfg.Import.JSON {
		path := filepath.Join(buyerDir, "discounts", sellerID+".json")
		if err := writeSnapshot(path, discounts); err != nil {
			return "", err
		}
	}

	return buyerDir, nil
}
