// Package edi decodes fixed-width wholesale interchange files into typed
// records. A file carries a two-line party header followed by content lines
// of exactly one record kind (product, price or discount). Every decoder in
// this package is expressed as an ordered walk of per-field widths over a
// single cursor primitive, so the byte accounting of each record kind stays
// auditable in one place.
package edi

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeField extracts exactly width runes starting at cursor, trims
// surrounding whitespace and returns the advanced cursor. It is the only
// function in the package that touches raw character offsets.
func decodeField(line []rune, cursor, width int) (string, int, error) {
	if cursor+width > len(line) {
		return "", cursor, fmt.Errorf("%w: need %d chars at offset %d, line has %d",
			ErrTruncatedRecord, width, cursor, len(line))
	}
	val := strings.TrimSpace(string(line[cursor : cursor+width]))
	return val, cursor + width, nil
}

// packedDecimal reconstructs a decimal value from a digit string with no
// literal decimal point. The first intLen characters are the integer part,
// the remainder the fraction: packedDecimal("000015099", 7) == 150.99.
func packedDecimal(val string, intLen int) (float64, error) {
	if len(val) <= intLen {
		return 0, fmt.Errorf("%w: %q is too short to split at %d", ErrMalformedNumber, val, intLen)
	}

	whole, err := strconv.ParseFloat(val[:intLen], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: integer part of %q: %v", ErrMalformedNumber, val, err)
	}
	frac, err := strconv.ParseFloat("0."+val[intLen:], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: fraction part of %q: %v", ErrMalformedNumber, val, err)
	}

	return whole + frac, nil
}

// Date is an interchange date kept as its wire components. No calendar
// validation happens beyond the positional split.
type Date struct {
	Year  string `json:"y"`
	Month string `json:"m"`
	Day   string `json:"d"`
}

// ParseDate splits an 8-character yyyymmdd token into its components.
func ParseDate(val string) (Date, error) {
	if len(val) != 8 {
		return Date{}, fmt.Errorf("%w: want yyyymmdd, got %q", ErrMalformedDate, val)
	}
	return Date{Year: val[:4], Month: val[4:6], Day: val[6:8]}, nil
}

// Timestamp renders the date the way the relational store keys it.
func (d Date) Timestamp() string {
	return fmt.Sprintf("%s-%s-%s 00:00:00.000", d.Year, d.Month, d.Day)
}
