package edi

import (
	"fmt"
	"strings"
	"testing"
)

// fixed renders values into a fixed-width line, padding each value to its
// column width with spaces.
func fixed(t *testing.T, vals []string, widths []int) string {
	t.Helper()

	if len(vals) != len(widths) {
		t.Fatalf("fixture has %d values for %d columns", len(vals), len(widths))
	}

	var b strings.Builder
	for i, v := range vals {
		if len(v) > widths[i] {
			t.Fatalf("fixture value %q wider than column %d (%d)", v, i, widths[i])
		}
		fmt.Fprintf(&b, "%-*s", widths[i], v)
	}
	return b.String()
}

func sellerHeaderLine(t *testing.T, id string) string {
	t.Helper()
	return fixed(t, []string{"O", "SE", id, "OVT"}, headerWidths)
}

func buyerHeaderLine(t *testing.T, id string) string {
	t.Helper()
	return fixed(t, []string{"O", "BY", id, "OVT"}, headerWidths)
}

// productLine is a fully populated, valid product entry line.
func productLine(t *testing.T, overrides map[int]string) string {
	t.Helper()

	vals := []string{
		"R",                  // marker
		"L",                  // category
		"123456789",          // identifier
		"1",                  // operation
		"fin",                // language
		"20260815",           // date
		"COPPER PIPE 15MM",   // name
		"HARD DRAWN 5M",      // description
		"PIPE COPPER",        // search tags
		"CU15",               // search code
		"DG1",                // discount group
		"m",                  // unit
		"0001500",            // unit weight -> 1.5
		"0000000",            // unit volume -> absent
		"000000010",          // typical packaging -> 10
		"000015099",          // packaging 1 -> 150.99
		"00500",              // packaging 1 discount -> 5.0
		"000000000",          // packaging 2 -> absent
		"00000",              // packaging 2 discount -> absent
		"000000000",          // packaging 3 -> absent
		"00000",              // packaging 3 discount -> absent
		"24",                 // tax class
		"04",                 // delivery lead time -> 4
		"",                   // stock flag -> stocked
		"6414971234567",      // ean
		"kpl",                // usage unit
		"000010000",          // usage unit factor -> 1.0
	}
	for i, v := range overrides {
		vals[i] = v
	}
	return fixed(t, vals, productWidths)
}

// priceLine is a fully populated, valid price entry line.
func priceLine(t *testing.T, overrides map[int]string) string {
	t.Helper()

	vals := []string{
		"R",         // marker
		"S",         // category
		"987654321", // identifier
		"A1",        // price group
		"000015099", // price -> 150.99
		"20260801",  // date
		"DG1",       // discount group
		"kpl",       // unit
		"0001",      // units included -> 1
		"000000000", // packaging 1 -> absent
		"00000",     // packaging 1 discount -> absent
		"000000000", // packaging 2 -> absent
		"00000",     // packaging 2 discount -> absent
		"000000000", // packaging 3 -> absent
		"00000",     // packaging 3 discount -> absent
		"",          // usage unit -> absent
		"000010000", // usage unit factor -> 1.0
		"E",         // stock flag -> not stocked
		"00",        // delivery lead time -> empty
	}
	for i, v := range overrides {
		vals[i] = v
	}
	return fixed(t, vals, priceWidths)
}

// discountLine is a fully populated, valid discount entry line.
func discountLine(t *testing.T, overrides map[int]string) string {
	t.Helper()

	vals := []string{
		"R",             // marker
		"DG1",           // discount group
		"CUST-1",        // identifier
		"DISCOUNT NAME", // name
		"A1",            // price group
		"000001000",     // percent 1 -> 10.0
		"000000500",     // percent 2 -> 5.0
	}
	for i, v := range overrides {
		vals[i] = v
	}
	return fixed(t, vals, discountWidths)
}
