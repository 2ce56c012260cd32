package store

import (
	"database/sql"
	"fmt"
)

// InsertSeller records a seller if it is not known yet. Sellers come from
// configuration, so an existing row is left alone.
func InsertSeller(tx *sql.Tx, id, name string) error {
	_, err := tx.Exec(`insert or ignore into sellers (id, name) values (?, ?)`, id, name)
	if err != nil {
		return fmt.Errorf("failed to insert seller %s: %w", id, err)
	}
	return nil
}

// InsertBuyer records a buyer under its surrogate id if it is not known yet.
// The surrogate id keeps the supplier-issued buyer id out of anything
// outward facing; uuid is a freshly generated opaque handle.
func InsertBuyer(tx *sql.Tx, surrogateID, uuid, buyerID string, vatPercent float64) error {
	_, err := tx.Exec(
		`insert or ignore into buyers (id, uuid, buyer_id, vat_percent) values (?, ?, ?, ?)`,
		surrogateID, uuid, buyerID, vatPercent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert buyer %s: %w", buyerID, err)
	}
	return nil
}

// SellerRowCounts returns per-category product and price row counts for one
// seller.
type SellerRowCounts struct {
	Category string
	Products int
	Prices   int
}

// CountSellerRows reports how many product and price rows a seller has in
// each category table.
func (s *Store) CountSellerRows(sellerID string) ([]SellerRowCounts, error) {
	var out []SellerRowCounts

	for _, cat := range categoryNames() {
		var counts SellerRowCounts
		counts.Category = cat

		err := s.sellers.QueryRow(
			fmt.Sprintf(`select count(*) from products_%s where seller_id = ?`, cat), sellerID,
		).Scan(&counts.Products)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s products: %w", cat, err)
		}

		err = s.sellers.QueryRow(
			fmt.Sprintf(`select count(*) from prices_%s where id like ? || '%%'`, cat), sellerID,
		).Scan(&counts.Prices)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s prices: %w", cat, err)
		}

		out = append(out, counts)
	}

	return out, nil
}
