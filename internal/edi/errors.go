package edi

import "errors"

// Sentinel errors for the decoding taxonomy. Callers use errors.Is to tell
// line-level failures apart from file-fatal ones.
var (
	// ErrTruncatedRecord is returned when a line has fewer characters left
	// than the field being decoded requires.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrMalformedNumber is returned when a packed decimal field does not
	// split into parseable integer and fraction halves.
	ErrMalformedNumber = errors.New("malformed packed number")

	// ErrMalformedDate is returned when a date token is not 8 characters.
	ErrMalformedDate = errors.New("malformed date")

	// ErrInvalidRowMarker is returned when the leading sentinel character of
	// a line is not the expected one.
	ErrInvalidRowMarker = errors.New("invalid row marker")

	// ErrInvalidOwnership is returned when a header ownership token is
	// neither SE nor BY.
	ErrInvalidOwnership = errors.New("invalid ownership token")

	// ErrInvalidCategory is returned for an unknown category letter.
	ErrInvalidCategory = errors.New("invalid category code")

	// ErrInvalidOperation is returned for an operation digit outside 1-3.
	ErrInvalidOperation = errors.New("invalid operation code")

	// ErrInvalidLanguage is returned for an unknown language name.
	ErrInvalidLanguage = errors.New("invalid language name")

	// ErrEmptyRequiredField is returned when a required string field decodes
	// to an empty value.
	ErrEmptyRequiredField = errors.New("required field is empty")

	// ErrSchemaSelfCheck is returned by SelfCheck when a record kind's field
	// widths do not sum to its documented line length.
	ErrSchemaSelfCheck = errors.New("field widths do not sum to record length")

	// ErrSharedOwnership is returned when a shared party is asked for a
	// storage directory. Shared parties never own one.
	ErrSharedOwnership = errors.New("shared ownership resolves to no directory")
)
