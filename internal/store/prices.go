package store

import (
	"database/sql"
	"fmt"

	"github.com/talotukku/edimport/internal/edi"
)

// UpsertPrice writes a seller price row, keyed seller id + product
// identifier within the category table.
func UpsertPrice(tx *sql.Tx, sellerID string, p *edi.Price) error {
	id := sellerID + p.Identifier

	_, err := tx.Exec(
		fmt.Sprintf(`insert into prices_%s (id, product_id, price_group, price, date,
		 discount_group, unit, units_incl, packaging_1, packaging_1_discount,
		 packaging_2, packaging_2_discount, packaging_3, packaging_3_discount,
		 usage_unit, usables_in_unit, stock_item, delivery_in_weeks)
		 values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 on conflict (id) do update set price_group=excluded.price_group,
		 price=excluded.price, date=excluded.date,
		 discount_group=excluded.discount_group, unit=excluded.unit,
		 units_incl=excluded.units_incl,
		 packaging_1=excluded.packaging_1, packaging_1_discount=excluded.packaging_1_discount,
		 packaging_2=excluded.packaging_2, packaging_2_discount=excluded.packaging_2_discount,
		 packaging_3=excluded.packaging_3, packaging_3_discount=excluded.packaging_3_discount,
		 usage_unit=excluded.usage_unit, usables_in_unit=excluded.usables_in_unit,
		 stock_item=excluded.stock_item, delivery_in_weeks=excluded.delivery_in_weeks`,
			p.Category.Name()),
		id, p.Identifier, p.PriceGroup, p.Price, p.Date.Timestamp(),
		p.DiscountGroup, p.Unit, p.UnitsIncluded,
		p.Packaging1, p.Packaging1Discount, p.Packaging2, p.Packaging2Discount,
		p.Packaging3, p.Packaging3Discount, p.UsageUnit, p.UsablesInUnit,
		p.Stocked(), p.DeliveryInWeeks,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert price %s: %w", p.Identifier, err)
	}
	return nil
}
