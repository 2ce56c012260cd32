package edi

// PriceLineLen is the documented total width of a price entry line.
const PriceLineLen = 100

// priceWidths is the price field-width table, in wire order: marker,
// category, identifier, price group, price, date, discount group, unit,
// units-included count, three packaging price/discount pairs, usage unit,
// usage unit factor, stock flag, delivery lead time.
var priceWidths = []int{
	1, 1, 9, 2, 9, 8, 6, 3, 4, 9, 5, 9, 5, 9, 5, 3, 9, 1, 2,
}

// Price is one decoded price entry. Prices arrive in cents with two packed
// decimals. Category is a snapshot key, not record content.
type Price struct {
	Category           Category `json:"-"`
	Identifier         string   `json:"-"`
	PriceGroup         string   `json:"group"`
	Price              float64  `json:"price"`
	Date               Date     `json:"date"`
	DiscountGroup      string   `json:"disc"`
	Unit               string   `json:"unit"`
	UnitsIncluded      int64    `json:"incl"`
	Packaging1         *float64 `json:"p1,omitempty"`
	Packaging1Discount *float64 `json:"p1d,omitempty"`
	Packaging2         *float64 `json:"p2,omitempty"`
	Packaging2Discount *float64 `json:"p2d,omitempty"`
	Packaging3         *float64 `json:"p3,omitempty"`
	Packaging3Discount *float64 `json:"p3d,omitempty"`
	UsageUnit          *string  `json:"i,omitempty"`
	UsablesInUnit      float64  `json:"ix"`
	StockItem          *bool    `json:"stock"`
	DeliveryInWeeks    *int64   `json:"delay,omitempty"`
}

// Stocked resolves the stock flag the same way products do.
func (p *Price) Stocked() bool {
	if p.StockItem == nil {
		return true
	}
	return *p.StockItem
}

func priceFields(p *Price) []field {
	floatPtr := func(dst **float64) func(float64) {
		return func(v float64) { *dst = &v }
	}

	return []field{
		{name: "row marker", width: 1, kind: fieldMarker},
		{name: "category", width: 1, kind: fieldCategory, setCategory: func(c Category) { p.Category = c }},
		{name: "product identifier", width: 9, kind: fieldRequiredString, setString: func(v string) { p.Identifier = v }},
		{name: "price group", width: 2, kind: fieldRequiredString, setString: func(v string) { p.PriceGroup = v }},
		{name: "price", width: 9, kind: fieldRequiredDecimal, intLen: 7, setFloat: func(v float64) { p.Price = v }},
		{name: "date", width: 8, kind: fieldDate, setDate: func(d Date) { p.Date = d }},
		{name: "discount group", width: 6, kind: fieldRequiredString, setString: func(v string) { p.DiscountGroup = v }},
		{name: "price unit", width: 3, kind: fieldRequiredString, setString: func(v string) { p.Unit = v }},
		{name: "units included", width: 4, kind: fieldRequiredInt, setInt: func(v int64) { p.UnitsIncluded = v }},
		{name: "packaging 1", width: 9, kind: fieldOptionalDecimal, intLen: 7, setFloat: floatPtr(&p.Packaging1)},
		{name: "packaging 1 discount", width: 5, kind: fieldOptionalDecimal, intLen: 3, setFloat: floatPtr(&p.Packaging1Discount)},
		{name: "packaging 2", width: 9, kind: fieldOptionalDecimal, intLen: 7, setFloat: floatPtr(&p.Packaging2)},
		{name: "packaging 2 discount", width: 5, kind: fieldOptionalDecimal, intLen: 3, setFloat: floatPtr(&p.Packaging2Discount)},
		{name: "packaging 3", width: 9, kind: fieldOptionalDecimal, intLen: 7, setFloat: floatPtr(&p.Packaging3)},
		{name: "packaging 3 discount", width: 5, kind: fieldOptionalDecimal, intLen: 3, setFloat: floatPtr(&p.Packaging3Discount)},
		{name: "usage unit", width: 3, kind: fieldOptionalString, setString: func(v string) { p.UsageUnit = &v }},
		{name: "usage unit factor", width: 9, kind: fieldRequiredDecimal, intLen: 5, setFloat: func(v float64) { p.UsablesInUnit = v }},
		{name: "stock flag", width: 1, kind: fieldStockFlag, setBool: func(v bool) { p.StockItem = &v }},
		{name: "delivery lead time", width: 2, kind: fieldTrailingInt, setInt: func(v int64) { p.DeliveryInWeeks = &v }},
	}
}

// DecodePrice decodes one price entry line.
func DecodePrice(line string) (*Price, []string, error) {
	p := &Price{}
	warnings, err := decodeFields(line, priceFields(p))
	if err != nil {
		return nil, warnings, err
	}
	return p, warnings, nil
}
