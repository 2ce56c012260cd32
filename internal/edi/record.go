package edi

import (
	"fmt"
	"strconv"
)

// fieldKind selects the decode policy of one fixed-width field. The three
// record decoders differ only in their field tables; the policies themselves
// live in decodeFields so the required/optional/numeric contracts are written
// down exactly once.
type fieldKind int

const (
	// fieldMarker must equal the entry sentinel; mismatch fails the line.
	fieldMarker fieldKind = iota

	// fieldCategory decodes a single-letter category code; invalid is fatal
	// for the line.
	fieldCategory

	// fieldOperation decodes a single operation digit; invalid is fatal.
	fieldOperation

	// fieldLanguage decodes a language name; invalid is fatal. The setter
	// may reject the value, which also fails the line (language filtering).
	fieldLanguage

	// fieldDate decodes an 8-character yyyymmdd token.
	fieldDate

	// fieldString assigns the trimmed value as-is, empty included.
	fieldString

	// fieldRequiredString fails the line when empty, unless warnEmpty is
	// set, in which case the empty value is assigned with a warning.
	fieldRequiredString

	// fieldOptionalString assigns only non-empty values.
	fieldOptionalString

	// fieldRequiredDecimal reconstructs a packed decimal; a value that does
	// not split is fatal for the line.
	fieldRequiredDecimal

	// fieldOptionalDecimal reconstructs a packed decimal when present. An
	// empty or too-short token is skipped, and a reconstructed value of
	// exactly zero collapses to absent: zero means "not set" here.
	fieldOptionalDecimal

	// fieldRequiredInt parses a plain integer; parse failure is fatal.
	// Values above zero are assigned.
	fieldRequiredInt

	// fieldOptionalInt parses a plain integer when present; parse failure of
	// a non-empty token is still fatal. Values above zero are assigned.
	fieldOptionalInt

	// fieldTrailingInt behaves like fieldOptionalInt but tolerates the line
	// ending before the field: some source files drop their last column.
	// The literal "00" counts as empty.
	fieldTrailingInt

	// fieldStockFlag assigns false for the single sentinel "E" and is
	// otherwise silent; absence of the marker means the item is stocked.
	fieldStockFlag
)

// field is one column of a record kind's width table.
type field struct {
	name      string
	width     int
	kind      fieldKind
	intLen    int  // split point for packed decimals
	warnEmpty bool // fieldRequiredString: warn instead of failing

	setString   func(string)
	setFloat    func(float64)
	setInt      func(int64)
	setBool     func(bool)
	setCategory func(Category)
	setOp       func(Operation)
	setLang     func(Language) error
	setDate     func(Date)
}

// decodeFields drives a field table over one line. The first field of every
// table is the marker. Returned warnings never abort the line; a returned
// error fails the line as a whole.
func decodeFields(line string, fields []field) ([]string, error) {
	runes := []rune(line)
	cursor := 0
	var warnings []string

	for _, f := range fields {
		val, next, err := decodeField(runes, cursor, f.width)
		if err != nil {
			if f.kind == fieldTrailingInt {
				warnings = append(warnings,
					fmt.Sprintf("optional trailing value %q ignored, should be '00' for empty", f.name))
				break
			}
			return warnings, err
		}
		cursor = next

		switch f.kind {
		case fieldMarker:
			if val != entryMarker {
				return warnings, fmt.Errorf("%w: row marker is fixed %q, found %q",
					ErrInvalidRowMarker, entryMarker, val)
			}

		case fieldCategory:
			c, err := CategoryFromCode(val)
			if err != nil {
				return warnings, err
			}
			f.setCategory(c)

		case fieldOperation:
			op, err := OperationFromCode(val)
			if err != nil {
				return warnings, err
			}
			f.setOp(op)

		case fieldLanguage:
			l, err := LanguageFromName(val)
			if err != nil {
				return warnings, err
			}
			if err := f.setLang(l); err != nil {
				return warnings, err
			}

		case fieldDate:
			d, err := ParseDate(val)
			if err != nil {
				return warnings, err
			}
			f.setDate(d)

		case fieldString:
			f.setString(val)

		case fieldRequiredString:
			if val == "" {
				if !f.warnEmpty {
					return warnings, fmt.Errorf("%w: %s", ErrEmptyRequiredField, f.name)
				}
				warnings = append(warnings, fmt.Sprintf("%s is an empty string", f.name))
			}
			f.setString(val)

		case fieldOptionalString:
			if val != "" {
				f.setString(val)
			}

		case fieldRequiredDecimal:
			d, err := packedDecimal(val, f.intLen)
			if err != nil {
				return warnings, fmt.Errorf("%s: %w", f.name, err)
			}
			f.setFloat(d)

		case fieldOptionalDecimal:
			if val == "" || len(val) <= f.intLen {
				continue
			}
			d, err := packedDecimal(val, f.intLen)
			if err != nil {
				return warnings, fmt.Errorf("%s: %w", f.name, err)
			}
			if d == 0 {
				continue
			}
			f.setFloat(d)

		case fieldRequiredInt, fieldOptionalInt, fieldTrailingInt:
			if val == "" && f.kind != fieldRequiredInt {
				continue
			}
			if val == "00" && f.kind == fieldTrailingInt {
				continue
			}
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return warnings, fmt.Errorf("%w: failed to read %q as %s: %v",
					ErrMalformedNumber, val, f.name, err)
			}
			if n > 0 {
				f.setInt(n)
			}

		case fieldStockFlag:
			if val == "E" {
				f.setBool(false)
			}
		}
	}

	return warnings, nil
}

// sumWidths adds up a width table for the startup self check.
func sumWidths(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total
}

// SelfCheck verifies that every record kind's field-width table sums to its
// documented total line length. It guards against schema drift between the
// tables and the documented layouts and runs once at startup, before any
// file is read.
func SelfCheck() error {
	checks := []struct {
		name   string
		widths []int
		reqLen int
	}{
		{"header", headerWidths, headerLineLen},
		{"product", productWidths, ProductLineLen},
		{"price", priceWidths, PriceLineLen},
		{"discount", discountWidths, DiscountLineLen},
	}

	for _, c := range checks {
		if got := sumWidths(c.widths); got != c.reqLen {
			return fmt.Errorf("%w: %s widths sum to %d, want %d",
				ErrSchemaSelfCheck, c.name, got, c.reqLen)
		}
	}
	return nil
}
