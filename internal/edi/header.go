package edi

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// headerLineLen is the documented total width of one header line.
	headerLineLen = 23

	// headerMarker opens every header line; entryMarker every content line.
	headerMarker = "O"
	entryMarker  = "R"
)

// headerWidths is the field-width table of a header line: marker, ownership
// token, party identifier, party code.
var headerWidths = []int{1, 2, 17, 3}

// Ownership tells which side of the trading relationship a party is on.
// Ownership decides the directory partition the party's data lives under.
type Ownership int

const (
	OwnershipShared Ownership = iota
	OwnershipSeller
	OwnershipBuyer
)

// pathSegment maps an ownership to its partition directory name. Shared
// parties have no partition of their own.
func (o Ownership) pathSegment() (string, error) {
	switch o {
	case OwnershipSeller:
		return "sellers", nil
	case OwnershipBuyer:
		return "buyers", nil
	default:
		return "", ErrSharedOwnership
	}
}

// Party is the identity decoded from one header line.
type Party struct {
	Owner Ownership
	ID    string
	Code  string
}

// PartyFromLine decodes a 23-character header line into a party identity.
func PartyFromLine(line string) (*Party, error) {
	party := &Party{Owner: OwnershipShared}
	runes := []rune(line)
	cursor := 0

	for i, width := range headerWidths {
		val, next, err := decodeField(runes, cursor, width)
		if err != nil {
			return nil, err
		}
		cursor = next

		switch i {
		case 0:
			if val != headerMarker {
				return nil, fmt.Errorf("%w: header marker is fixed %q, found %q",
					ErrInvalidRowMarker, headerMarker, val)
			}
		case 1:
			switch val {
			case "SE":
				party.Owner = OwnershipSeller
			case "BY":
				party.Owner = OwnershipBuyer
			default:
				return nil, fmt.Errorf("%w: owner should be SE or BY, found %q",
					ErrInvalidOwnership, val)
			}
		case 2:
			party.ID = val
		case 3:
			party.Code = val
		}
	}

	return party, nil
}

// IsSeller reports whether the party owns the seller side.
func (p *Party) IsSeller() bool { return p.Owner == OwnershipSeller }

// IsBuyer reports whether the party owns the buyer side.
func (p *Party) IsBuyer() bool { return p.Owner == OwnershipBuyer }

// Equal compares two party identities field by field.
func (p *Party) Equal(other *Party) bool {
	if other == nil {
		return false
	}
	return p.Owner == other.Owner && p.ID == other.ID && p.Code == other.Code
}

// PartitionDir resolves the ownership partition under the data root, e.g.
// root/sellers. Resolving a shared party is an error.
func (p *Party) PartitionDir(root string) (string, error) {
	seg, err := p.Owner.pathSegment()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, seg), nil
}

// HomeDir resolves the party's own directory, e.g. root/sellers/<id>.
func (p *Party) HomeDir(root string) (string, error) {
	dir, err := p.PartitionDir(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, p.ID), nil
}

// CreateParty decodes a header line and returns the party together with its
// home directory. A seller's home directory is created if absent. Buyers
// don't get a directory here: each buyer is a customer of a seller, so the
// directory only becomes meaningful under a seller that already has data.
func CreateParty(root, line string) (*Party, string, error) {
	party, err := PartyFromLine(line)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read line as interchange header: %w", err)
	}

	home, err := party.HomeDir(root)
	if err != nil {
		return nil, "", err
	}

	if party.IsSeller() {
		if err := os.MkdirAll(home, 0o755); err != nil {
			return nil, "", fmt.Errorf("failed to create seller home dir for id %s: %w", party.ID, err)
		}
	}

	return party, home, nil
}

// Header carries the two parties named by a file's first two lines.
type Header struct {
	Seller *Party
	Buyer  *Party
}

// ReadHeader decodes the first two lines of a file. The buyer line comes
// first, the seller line second; the ownership tokens decide which slot each
// party lands in.
func ReadHeader(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := &Header{}
	scanner := bufio.NewScanner(f)

	for i := 0; i < 2 && scanner.Scan(); i++ {
		party, err := PartyFromLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("failed to read header line %d of %s: %w", i+1, path, err)
		}
		if party.IsBuyer() {
			head.Buyer = party
		} else {
			head.Seller = party
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	return head, nil
}
