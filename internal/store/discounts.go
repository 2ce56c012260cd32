package store

import (
	"database/sql"
	"fmt"

	"github.com/talotukku/edimport/internal/edi"
)

// UpsertDiscount writes a buyer's discount for one seller and discount
// group, keyed buyer surrogate id + discount group.
func UpsertDiscount(tx *sql.Tx, buyerSurrogateID, sellerID string, d *edi.Discount) error {
	id := buyerSurrogateID + d.DiscountGroup

	_, err := tx.Exec(
		`insert into discounts (id, buyer_id, seller_id, discount_group, price_group,
		 percent_1, percent_2) values (?, ?, ?, ?, ?, ?, ?)
		 on conflict (id) do update set price_group=excluded.price_group,
		 percent_1=excluded.percent_1, percent_2=excluded.percent_2`,
		id, buyerSurrogateID, sellerID, d.DiscountGroup, d.PriceGroup,
		d.Percent1, d.Percent2,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert discount %s: %w", d.DiscountGroup, err)
	}
	return nil
}
