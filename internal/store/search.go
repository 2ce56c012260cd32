package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// searchRow is one full-text index row. Body is the concatenated searchable
// text of a product translation.
type searchRow struct {
	Lang      int
	SellerID  string
	ProductID string
	Body      string
}

// EnsureSearchIndex creates the per-category FTS5 virtual tables. Kept out
// of the migrations because search indexing is optional.
func (s *Store) EnsureSearchIndex() error {
	for _, cat := range categoryNames() {
		_, err := s.sellers.Exec(fmt.Sprintf(
			`create virtual table if not exists search_%s using fts5 (
				lang UNINDEXED,
				seller_id UNINDEXED,
				product_id,
				body,
				tokenize='trigram'
			)`, cat))
		if err != nil {
			return fmt.Errorf("failed to create search table for %s: %w", cat, err)
		}
	}
	return nil
}

// RebuildSearchIndex refreshes every category's full-text index from the
// translation rows. activeSellers maps seller id to display name; rows of
// sellers no longer configured are dropped, and the seller name is folded
// into each body so searches hit on it too.
func (s *Store) RebuildSearchIndex(activeSellers map[string]string) error {
	for _, cat := range categoryNames() {
		if err := s.rebuildCategoryIndex(cat, activeSellers); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) rebuildCategoryIndex(cat string, activeSellers map[string]string) error {
	if err := s.dropObsoleteSearchRows(cat, activeSellers); err != nil {
		return err
	}

	existing, err := s.querySearchIndex(cat)
	if err != nil {
		return err
	}

	wanted, err := s.querySearchBodies(cat, activeSellers)
	if err != nil {
		return err
	}

	tx, err := s.sellers.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin search index transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range wanted {
		old, ok := existing[row.SellerID+row.ProductID]
		switch {
		case ok && old == row:
			continue
		case ok:
			_, err = tx.Exec(
				fmt.Sprintf(`update search_%s set body = ? where seller_id = ? and product_id = ?`, cat),
				row.Body, row.SellerID, row.ProductID,
			)
		default:
			_, err = tx.Exec(
				fmt.Sprintf(`insert into search_%s (seller_id, product_id, lang, body) values (?, ?, ?, ?)`, cat),
				row.SellerID, row.ProductID, row.Lang, row.Body,
			)
		}
		if err != nil {
			return fmt.Errorf("failed to write search row for %s: %w", row.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit search index for %s: %w", cat, err)
	}

	// FTS housekeeping; merges the index segments.
	_, err = s.sellers.Exec(fmt.Sprintf(`insert into search_%s(search_%s) values('optimize')`, cat, cat))
	if err != nil {
		return fmt.Errorf("failed to optimize search index for %s: %w", cat, err)
	}

	return nil
}

func (s *Store) dropObsoleteSearchRows(cat string, activeSellers map[string]string) error {
	if len(activeSellers) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(activeSellers)), ", ")
	args := make([]any, 0, len(activeSellers))
	for id := range activeSellers {
		args = append(args, id)
	}

	_, err := s.sellers.Exec(
		fmt.Sprintf(`delete from search_%s where seller_id not in (%s)`, cat, placeholders),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to delete obsolete %s search rows: %w", cat, err)
	}
	return nil
}

func (s *Store) querySearchIndex(cat string) (map[string]searchRow, error) {
	rows, err := s.sellers.Query(fmt.Sprintf(`select lang, seller_id, product_id, body from search_%s`, cat))
	if err != nil {
		return nil, fmt.Errorf("failed to query search index for %s: %w", cat, err)
	}
	defer rows.Close()

	index := make(map[string]searchRow)
	for rows.Next() {
		var r searchRow
		if err := rows.Scan(&r.Lang, &r.SellerID, &r.ProductID, &r.Body); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		index[r.SellerID+r.ProductID] = r
	}
	return index, rows.Err()
}

// querySearchBodies joins translations to seller product rows and composes
// the searchable body for each: product name, seller name, then description,
// tags and search code when present.
func (s *Store) querySearchBodies(cat string, activeSellers map[string]string) ([]searchRow, error) {
	rows, err := s.sellers.Query(fmt.Sprintf(
		`select p.seller_id, p.product_id, t.lang, t.name, t.description, t.tags, t.code
		 from product_%s_t t join products_%s p on t.id = p.id || t.lang`, cat, cat))
	if err != nil {
		return nil, fmt.Errorf("failed to query search translations for %s: %w", cat, err)
	}
	defer rows.Close()

	var out []searchRow
	for rows.Next() {
		var (
			r           searchRow
			name, descr string
			tags, code  sql.NullString
		)
		if err := rows.Scan(&r.SellerID, &r.ProductID, &r.Lang, &name, &descr, &tags, &code); err != nil {
			return nil, fmt.Errorf("failed to scan translation row: %w", err)
		}

		if seller, ok := activeSellers[r.SellerID]; ok {
			name = name + ", " + seller
		}

		body := name
		if descr != "" {
			body = body + ", " + descr
		}
		if tags.Valid {
			body = body + ", " + tags.String
		}
		if code.Valid {
			body = body + ", " + code.String
		}
		r.Body = body

		out = append(out, r)
	}
	return out, rows.Err()
}
