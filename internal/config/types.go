// Package config provides configuration management for the importer.
// Configuration is read from an edimport.yaml file in the data directory,
// with environment variables and CLI flags layered on top.
package config

import (
	"fmt"

	"github.com/talotukku/edimport/internal/edi"
)

// ImportTargets selects which persisted outputs an import run produces.
type ImportTargets struct {
	JSON   bool `koanf:"json"`
	SQLite bool `koanf:"sqlite"`
	Search bool `koanf:"search"`
}

// Seller is one configured trading partner. URLs maps a category name to
// fallback chains of download URLs; each inner list is tried in order until
// one responds. URLs may carry a {mmyy} token replaced with the current
// two-digit month and year.
type Seller struct {
	ID   string                `koanf:"id"`
	Name string                `koanf:"name"`
	URLs map[string][][]string `koanf:"urls"`
}

// Config holds all importer configuration.
type Config struct {
	// Dir is the data directory: config file, databases, party archives
	// and work directories all live under it.
	Dir string `koanf:"dir"`

	VATPercent float64       `koanf:"vat_percent"`
	Languages  []string      `koanf:"languages"`
	Import     ImportTargets `koanf:"import"`
	Sellers    []Seller      `koanf:"sellers"`
	Verbose    bool          `koanf:"verbose"`
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{edi.LangFin.Name()}
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Import.Search && !c.Import.SQLite {
		return fmt.Errorf("search index importing requires sqlite import to be enabled")
	}
	if _, err := c.LanguageCodes(); err != nil {
		return err
	}
	for _, s := range c.Sellers {
		if s.ID == "" {
			return fmt.Errorf("seller %q has no id", s.Name)
		}
		for cat := range s.URLs {
			if _, err := edi.CategoryFromName(cat); err != nil {
				return fmt.Errorf("seller %s: %w", s.ID, err)
			}
		}
	}
	return nil
}

// LanguageCodes parses the configured language names. Unknown names are
// fatal.
func (c *Config) LanguageCodes() ([]edi.Language, error) {
	langs := make([]edi.Language, 0, len(c.Languages))
	for _, name := range c.Languages {
		l, err := edi.LanguageFromName(name)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, nil
}

// SellerByID returns the configured seller with the given id, or nil.
func (c *Config) SellerByID(id string) *Seller {
	for i := range c.Sellers {
		if c.Sellers[i].ID == id {
			return &c.Sellers[i]
		}
	}
	return nil
}
