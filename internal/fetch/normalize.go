package fetch

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/talotukku/edimport/internal/edi"
)

// normalizeToStaging converts a raw delivery into the known interchange
// shape under ediDir: UTF-8 content, no blank lines, a valid two-line party
// header. Seller systems still emit ISO-8859-1, so anything that fails a
// strict UTF-8 check is transcoded from Latin-1. The source file is
// consumed either way.
func normalizeToStaging(from, ediDir, name string) (string, error) {
	raw, err := os.ReadFile(from)
	if err != nil {
		return "", fmt.Errorf("failed to read convertable file %s: %w", from, err)
	}

	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode %s as latin-1: %w", from, err)
		}
	}

	var clean bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			clean.WriteString(line)
			clean.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("unable to read line for cleanup from %s: %w", from, err)
	}

	if err := os.MkdirAll(ediDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging dir: %w", err)
	}

	to := filepath.Join(ediDir, name)
	if err := os.WriteFile(to, clean.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write normalized file %s: %w", to, err)
	}

	if _, err := edi.ReadHeader(to); err != nil {
		os.Remove(to)
		return "", fmt.Errorf("cleaned up file has invalid header: %w", err)
	}

	if from != to {
		if err := os.Remove(from); err != nil {
			return "", fmt.Errorf("failed to delete consumed source file %s: %w", from, err)
		}
	}

	return to, nil
}
