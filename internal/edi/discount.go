package edi

// DiscountLineLen is the documented total width of a discount entry line.
const DiscountLineLen = 92

// discountWidths is the discount field-width table: marker, discount group,
// identifier, name, price group, two percentage fields.
var discountWidths = []int{1, 6, 25, 40, 2, 9, 9}

// Discount is one decoded buyer discount row. Discounts are scoped to one
// buyer/seller relationship; the identifier comes from the supplier.
type Discount struct {
	DiscountGroup string  `json:"disc"`
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PriceGroup    string  `json:"group"`
	Percent1      float64 `json:"pc1"`
	Percent2      float64 `json:"pc2"`
}

func discountFields(d *Discount) []field {
	return []field{
		{name: "row marker", width: 1, kind: fieldMarker},
		{name: "discount group", width: 6, kind: fieldString, setString: func(v string) { d.DiscountGroup = v }},
		{name: "identifier", width: 25, kind: fieldString, setString: func(v string) { d.ID = v }},
		{name: "name", width: 40, kind: fieldString, setString: func(v string) { d.Name = v }},
		{name: "price group", width: 2, kind: fieldString, setString: func(v string) { d.PriceGroup = v }},
		{name: "percent 1", width: 9, kind: fieldRequiredDecimal, intLen: 7, setFloat: func(v float64) { d.Percent1 = v }},
		{name: "percent 2", width: 9, kind: fieldRequiredDecimal, intLen: 7, setFloat: func(v float64) { d.Percent2 = v }},
	}
}

// DecodeDiscount decodes one discount entry line.
func DecodeDiscount(line string) (*Discount, error) {
	d := &Discount{}
	if _, err := decodeFields(line, discountFields(d)); err != nil {
		return nil, err
	}
	return d, nil
}
