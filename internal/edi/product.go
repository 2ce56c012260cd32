package edi

import "fmt"

// ProductLineLen is the documented total width of a product entry line.
const ProductLineLen = 232

// productWidths is the product field-width table, in wire order: marker,
// category, identifier, operation, language, date, name, description, search
// tags, search code, discount group, unit, unit weight, unit volume, typical
// packaging, three packaging price/discount pairs, tax class, delivery lead
// time, stock flag, EAN code, usage unit, usage unit factor.
var productWidths = []int{
	1, 1, 9, 1, 3, 8, 35, 35, 20, 7, 6, 3, 7, 7, 9, 9, 5, 9, 5,
	9, 5, 3, 2, 1, 20, 3, 9,
}

// Product is one decoded catalog entry. The JSON layout matches the snapshot
// objects written next to the relational rows; category, identifier and
// language are snapshot keys rather than record content.
type Product struct {
	Category           Category  `json:"-"`
	Identifier         string    `json:"-"`
	Operation          Operation `json:"op"`
	Language           Language  `json:"-"`
	Date               Date      `json:"date"`
	Name               string    `json:"name"`
	Description        string    `json:"name2"`
	SearchTags         *string   `json:"tag,omitempty"`
	SearchCode         *string   `json:"ref,omitempty"`
	DiscountGroup      *string   `json:"disc,omitempty"`
	Unit               string    `json:"unit"`
	UnitWeight         *float64  `json:"weight,omitempty"`
	UnitVolume         *float64  `json:"vol,omitempty"`
	TypicalPackaging   *int64    `json:"pkg,omitempty"`
	Packaging1         *float64  `json:"p1,omitempty"`
	Packaging1Discount *float64  `json:"p1d,omitempty"`
	Packaging2         *float64  `json:"p2,omitempty"`
	Packaging2Discount *float64  `json:"p2d,omitempty"`
	Packaging3         *float64  `json:"p3,omitempty"`
	Packaging3Discount *float64  `json:"p3d,omitempty"`
	TaxClass           *string   `json:"tax,omitempty"`
	DeliveryInWeeks    *int64    `json:"delay,omitempty"`
	StockItem          *bool     `json:"stock"`
	EANCode            *string   `json:"ean,omitempty"`
	UsageUnit          *string   `json:"i,omitempty"`
	UsablesInUnit      float64   `json:"ix"`
}

// Stocked resolves the stock flag: absence of the unavailable marker means
// the item is stocked.
func (p *Product) Stocked() bool {
	if p.StockItem == nil {
		return true
	}
	return *p.StockItem
}

// productFields builds the product decode table around p. When filter is
// non-nil, a line whose embedded language differs fails at the language
// field, which lets one physical file be decoded once per configured
// language.
func productFields(p *Product, filter *Language) []field {
	strPtr := func(dst **string) func(string) {
		return func(v string) { *dst = &v }
	}
	floatPtr := func(dst **float64) func(float64) {
		return func(v float64) { *dst = &v }
	}
	intPtr := func(dst **int64) func(int64) {
		return func(v int64) { *dst = &v }
	}

	return []field{
		{name: "row marker", width: 1, kind: fieldMarker},
		{name: "category", width: 1, kind: fieldCategory, setCategory: func(c Category) { p.Category = c }},
		{name: "product identifier", width: 9, kind: fieldRequiredString, setString: func(v string) { p.Identifier = v }},
		{name: "operation", width: 1, kind: fieldOperation, setOp: func(o Operation) { p.Operation = o }},
		{name: "language", width: 3, kind: fieldLanguage, setLang: func(l Language) error {
			if filter != nil && l != *filter {
				return fmt.Errorf("language filter set to %s and product language is %s", *filter, l)
			}
			p.Language = l
			return nil
		}},
		{name: "date", width: 8, kind: fieldDate, setDate: func(d Date) { p.Date = d }},
		{name: "product name", width: 35, kind: fieldRequiredString, setString: func(v string) { p.Name = v }},
		{name: "product description", width: 35, kind: fieldRequiredString, warnEmpty: true, setString: func(v string) { p.Description = v }},
		{name: "search tags", width: 20, kind: fieldOptionalString, setString: strPtr(&p.SearchTags)},
		{name: "search code", width: 7, kind: fieldOptionalString, setString: strPtr(&p.SearchCode)},
		{name: "discount group", width: 6, kind: fieldOptionalString, setString: strPtr(&p.DiscountGroup)},
		{name: "product unit", width: 3, kind: fieldRequiredString, setString: func(v string) { p.Unit = v }},
		{name: "unit weight", width: 7, kind: fieldOptionalDecimal, intLen: 4, setFloat: floatPtr(&p.UnitWeight)},
		{name: "unit volume", width: 7, kind: fieldOptionalDecimal, intLen: 4, setFloat: floatPtr(&p.UnitVolume)},
		{name: "typical packaging", width: 9, kind: fieldOptionalInt, setInt: intPtr(&p.TypicalPackaging)},
		{name: "packaging 1", width: 9, kind: fieldOptionalDecimal, intLen: 7, setFloat: floatPtr(&p.Packaging1)},
		{name: "packaging 1 discount", width: 5, kind: fieldOptionalDecimal, intLen: 3, setFloat: floatPtr(&p.Packaging1Discount)},
		{name: "packaging 2", width: 9, kind: fieldOptionalDecimal, intLen: 7, setFloat: floatPtr(&p.Packaging2)},
		{name: "packaging 2 discount", width: 5, kind: fieldOptionalDecimal, intLen: 3, setFloat: floatPtr(&p.Packaging2Discount)},
		{name: "packaging 3", width: 9, kind: fieldOptionalDecimal, intLen: 7, setFloat: floatPtr(&p.Packaging3)},
		{name: "packaging 3 discount", width: 5, kind: fieldOptionalDecimal, intLen: 3, setFloat: floatPtr(&p.Packaging3Discount)},
		{name: "tax class", width: 3, kind: fieldOptionalString, setString: strPtr(&p.TaxClass)},
		{name: "delivery lead time", width: 2, kind: fieldOptionalInt, setInt: intPtr(&p.DeliveryInWeeks)},
		{name: "stock flag", width: 1, kind: fieldStockFlag, setBool: func(v bool) { p.StockItem = &v }},
		{name: "ean code", width: 20, kind: fieldOptionalString, setString: strPtr(&p.EANCode)},
		{name: "usage unit", width: 3, kind: fieldOptionalString, setString: strPtr(&p.UsageUnit)},
		{name: "usage unit factor", width: 9, kind: fieldRequiredDecimal, intLen: 5, setFloat: func(v float64) { p.UsablesInUnit = v }},
	}
}

// DecodeProduct decodes one product entry line. Warnings never abort the
// line; an error drops the line.
func DecodeProduct(line string, filter *Language) (*Product, []string, error) {
	p := &Product{}
	warnings, err := decodeFields(line, productFields(p, filter))
	if err != nil {
		return nil, warnings, err
	}
	return p, warnings, nil
}
