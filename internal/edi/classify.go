package edi

import (
	"bufio"
	"fmt"
	"os"
)

// FileType is the structural shape of an interchange file.
type FileType int

const (
	FileUnrecognized FileType = iota
	FileProduct
	FilePrice
	FileDiscount
)

func (t FileType) String() string {
	switch t {
	case FileProduct:
		return "product"
	case FilePrice:
		return "price"
	case FileDiscount:
		return "discount"
	default:
		return "unrecognized"
	}
}

// Classify probe-decodes the first business line of a file with each record
// decoder in a fixed priority order and returns the first kind that decodes
// cleanly. A file matching no decoder is unrecognized; the caller decides
// its fate.
func Classify(path string) (FileType, error) {
	probe, err := firstEntryLine(path)
	if err != nil {
		return FileUnrecognized, err
	}

	if _, _, err := DecodeProduct(probe, nil); err == nil {
		return FileProduct, nil
	}
	if _, _, err := DecodePrice(probe); err == nil {
		return FilePrice, nil
	}
	if _, err := DecodeDiscount(probe); err == nil {
		return FileDiscount, nil
	}

	return FileUnrecognized, nil
}

// firstEntryLine reads the first line after the two-line header.
func firstEntryLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; scanner.Scan(); i++ {
		if i < 2 {
			continue
		}
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read first entry line from %s: %w", path, err)
	}

	return "", fmt.Errorf("file %s has no entry lines after the header", path)
}
