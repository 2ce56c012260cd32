package edi

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LineKind classifies a physical line by its ordinal position: the first two
// lines of a file are the buyer and seller headers, everything after is an
// entry of the file's record kind.
type LineKind int

const (
	LineBuyer LineKind = iota
	LineSeller
	LineEntry
)

// Line is one classified physical line.
type Line struct {
	Kind LineKind
	Text string
}

// ReadLine classifies a raw line by index and checks an entry line against
// the record kind's required length. A nil line means skip.
//
// Entries shorter than required are still attempted downstream, with a
// warning. Entries longer than required get one more chance after trimming;
// if still too long the line is dropped with a warning rather than aborting
// the file.
func ReadLine(text string, index, reqLen int) (*Line, []string) {
	if strings.TrimSpace(text) == "" {
		// Should not be any, but still.
		return nil, nil
	}

	if index == 0 {
		return &Line{Kind: LineBuyer, Text: text}, nil
	}
	if index == 1 {
		return &Line{Kind: LineSeller, Text: text}, nil
	}

	lineLen := utf8.RuneCountInString(text)

	if lineLen < reqLen {
		warning := fmt.Sprintf("line %d: length %d is smaller than the expected length %d",
			index+1, lineLen, reqLen)
		return &Line{Kind: LineEntry, Text: text}, []string{warning}
	}

	if lineLen > reqLen {
		trimmed := strings.TrimSpace(text)
		if utf8.RuneCountInString(trimmed) > reqLen {
			warning := fmt.Sprintf("skipping line %d: length %d is greater than expected %d (%s)",
				index+1, utf8.RuneCountInString(trimmed), reqLen, trimmed)
			return nil, []string{warning}
		}
		return &Line{Kind: LineEntry, Text: trimmed}, nil
	}

	return &Line{Kind: LineEntry, Text: text}, nil
}
