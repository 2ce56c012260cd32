package store

import (
	"database/sql"
	"fmt"

	"github.com/talotukku/edimport/internal/edi"
)

// categoryNames lists the table-name suffixes of the category-partitioned
// tables.
func categoryNames() []string {
	cats := edi.Categories()
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name())
	}
	return names
}

// Lookup domains are populated lazily: whatever values the decoded records
// carry get recorded on first sight, nothing is pre-seeded.

// InsertUnit records a unit if missing.
func InsertUnit(tx *sql.Tx, id string) error {
	if _, err := tx.Exec(`insert or ignore into units (id) values (?)`, id); err != nil {
		return fmt.Errorf("failed to insert unit %s: %w", id, err)
	}
	return nil
}

// InsertLanguage records a language if missing.
func InsertLanguage(tx *sql.Tx, lang edi.Language) error {
	_, err := tx.Exec(`insert or ignore into languages (id, name) values (?, ?)`,
		lang.Index(), lang.Name())
	if err != nil {
		return fmt.Errorf("failed to insert language %s: %w", lang, err)
	}
	return nil
}

// InsertDiscountGroup records a discount group if missing.
func InsertDiscountGroup(tx *sql.Tx, id string) error {
	if _, err := tx.Exec(`insert or ignore into discount_groups (id) values (?)`, id); err != nil {
		return fmt.Errorf("failed to insert discount group %s: %w", id, err)
	}
	return nil
}

// InsertPriceGroup records a price group if missing.
func InsertPriceGroup(tx *sql.Tx, id string) error {
	if _, err := tx.Exec(`insert or ignore into price_groups (id) values (?)`, id); err != nil {
		return fmt.Errorf("failed to insert price group %s: %w", id, err)
	}
	return nil
}

// DiscountGroups returns every known discount group id.
func (s *Store) DiscountGroups() ([]string, error) {
	return s.queryIDs("discount_groups")
}

// PriceGroups returns every known price group id.
func (s *Store) PriceGroups() ([]string, error) {
	return s.queryIDs("price_groups")
}

func (s *Store) queryIDs(table string) ([]string, error) {
	rows, err := s.sellers.Query(fmt.Sprintf(`select id from %s`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
