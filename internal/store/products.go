package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/talotukku/edimport/internal/edi"
)

// UpsertGenericProduct writes the category-independent product row shared by
// every seller carrying the identifier.
func UpsertGenericProduct(tx *sql.Tx, p *edi.Product) error {
	_, err := tx.Exec(
		`insert into products (id, category, tax_class) values (?, ?, ?)
		 on conflict (id) do update set tax_class=excluded.tax_class`,
		p.Identifier, p.Category.Name(), p.TaxClass,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert generic product %s: %w", p.Identifier, err)
	}
	return nil
}

// UpsertTranslation writes one language's translation row for a seller
// product. The row is keyed seller id + product identifier + language index
// so each language pass owns its own row.
func UpsertTranslation(tx *sql.Tx, sellerID string, p *edi.Product) error {
	id := sellerID + p.Identifier + strconv.Itoa(p.Language.Index())

	_, err := tx.Exec(
		fmt.Sprintf(`insert into product_%s_t (id, lang, name, description, tags, code)
		 values (?, ?, ?, ?, ?, ?)
		 on conflict (id) do update set name=excluded.name,
		 description=excluded.description, tags=excluded.tags, code=excluded.code`,
			p.Category.Name()),
		id, p.Language.Index(), p.Name, p.Description, p.SearchTags, p.SearchCode,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert translation for product %s: %w", p.Identifier, err)
	}
	return nil
}

// UpsertProduct writes the seller product row with its language-independent
// attributes, keyed seller id + product identifier.
func UpsertProduct(tx *sql.Tx, sellerID string, p *edi.Product) error {
	id := sellerID + p.Identifier

	_, err := tx.Exec(
		fmt.Sprintf(`insert into products_%s (id, product_id, seller_id, operation, date,
		 discount_group, unit, unit_weight, unit_volume, typical_packaging,
		 packaging_1, packaging_1_discount, packaging_2, packaging_2_discount,
		 packaging_3, packaging_3_discount, delivery_in_weeks, stock_item,
		 ean_code, usage_unit, usables_in_unit)
		 values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 on conflict (id) do update set operation=excluded.operation,
		 date=excluded.date, discount_group=excluded.discount_group,
		 unit=excluded.unit, unit_weight=excluded.unit_weight,
		 unit_volume=excluded.unit_volume, typical_packaging=excluded.typical_packaging,
		 packaging_1=excluded.packaging_1, packaging_1_discount=excluded.packaging_1_discount,
		 packaging_2=excluded.packaging_2, packaging_2_discount=excluded.packaging_2_discount,
		 packaging_3=excluded.packaging_3, packaging_3_discount=excluded.packaging_3_discount,
		 delivery_in_weeks=excluded.delivery_in_weeks, stock_item=excluded.stock_item,
		 ean_code=excluded.ean_code, usage_unit=excluded.usage_unit,
		 usables_in_unit=excluded.usables_in_unit`,
			p.Category.Name()),
		id, p.Identifier, sellerID, p.Operation.Name(), p.Date.Timestamp(),
		p.DiscountGroup, p.Unit, p.UnitWeight, p.UnitVolume, p.TypicalPackaging,
		p.Packaging1, p.Packaging1Discount, p.Packaging2, p.Packaging2Discount,
		p.Packaging3, p.Packaging3Discount, p.DeliveryInWeeks, p.Stocked(),
		p.EANCode, p.UsageUnit, p.UsablesInUnit,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", p.Identifier, err)
	}
	return nil
}
