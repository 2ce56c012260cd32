package importer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/talotukku/edimport/internal/edi"
)

// AlreadyImported reports whether the file at path is a byte-for-byte
// re-delivery of one already archived for the same party. A match deletes
// the newcomer: the caller skips reprocessing entirely.
//
// Candidates come from the party's archive directory and are narrowed first
// by decoded party identity, then by file size; only size-equal candidates
// get the exact comparison.
func (im *Importer) AlreadyImported(path string, ownership edi.Ownership) (bool, error) {
	header, err := edi.ReadHeader(path)
	if err != nil {
		return false, err
	}

	home, party, err := archiveHome(im.cfg.Dir, header, ownership)
	if err != nil {
		return false, err
	}

	archiveDir := filepath.Join(home, EdiDirName)
	if info, err := os.Stat(archiveDir); err != nil || !info.IsDir() {
		// Nothing archived yet, nothing to compare against.
		return false, nil
	}

	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		return false, fmt.Errorf("failed to read archive dir %s: %w", archiveDir, err)
	}

	newInfo, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	var newContent []byte

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			// Who created a directory or symlink here...
			continue
		}

		candidate := filepath.Join(archiveDir, entry.Name())
		candHeader, err := edi.ReadHeader(candidate)
		if err != nil {
			return false, err
		}

		var candParty *edi.Party
		if ownership == edi.OwnershipSeller {
			candParty = candHeader.Seller
		} else {
			candParty = candHeader.Buyer
		}
		if candParty == nil || !candParty.Equal(party) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return false, err
		}
		if info.Size() != newInfo.Size() {
			continue
		}

		if newContent == nil {
			if newContent, err = os.ReadFile(path); err != nil {
				return false, err
			}
		}
		candContent, err := os.ReadFile(candidate)
		if err != nil {
			return false, err
		}

		if bytes.Equal(newContent, candContent) {
			// Pure re-delivery, get rid of the newcomer.
			if err := os.Remove(path); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

// archiveHome resolves the party home directory re-deliveries are compared
// against: sellers own their home directly, buyers live under their seller.
func archiveHome(root string, header *edi.Header, ownership edi.Ownership) (string, *edi.Party, error) {
	switch ownership {
	case edi.OwnershipSeller:
		if header.Seller == nil {
			return "", nil, fmt.Errorf("file ownership set to seller but header names none")
		}
		home, err := header.Seller.HomeDir(root)
		if err != nil {
			return "", nil, err
		}
		return home, header.Seller, nil

	case edi.OwnershipBuyer:
		if header.Buyer == nil {
			return "", nil, fmt.Errorf("file ownership set to buyer but header names none")
		}
		if header.Seller == nil {
			return "", nil, fmt.Errorf("interchange header has a buyer reference but no seller")
		}
		sellerHome, err := header.Seller.HomeDir(root)
		if err != nil {
			return "", nil, err
		}
		return filepath.Join(sellerHome, "buyers", header.Buyer.ID), header.Buyer, nil

	default:
		return "", nil, edi.ErrSharedOwnership
	}
}
