package edi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is a product line partition. Every persisted table and snapshot
// object is namespaced by one of these.
type Category int

const (
	CategoryUnset Category = iota
	CategoryWaterAndHeating
	CategoryVentilation
	CategoryElectricity
	CategoryIndustrial
	CategoryRefrigeration
)

// CategoryFromCode maps a single-letter interchange code to a category.
func CategoryFromCode(val string) (Category, error) {
	switch val {
	case "L":
		return CategoryWaterAndHeating, nil
	case "I":
		return CategoryVentilation, nil
	case "S":
		return CategoryElectricity, nil
	case "P":
		return CategoryIndustrial, nil
	case "K":
		return CategoryRefrigeration, nil
	default:
		return CategoryUnset, fmt.Errorf("%w: %q", ErrInvalidCategory, val)
	}
}

// Name returns the short name used for table and snapshot namespaces.
func (c Category) Name() string {
	switch c {
	case CategoryWaterAndHeating:
		return "lv"
	case CategoryVentilation:
		return "iv"
	case CategoryElectricity:
		return "sa"
	case CategoryIndustrial:
		return "te"
	case CategoryRefrigeration:
		return "ky"
	default:
		return "unset"
	}
}

func (c Category) String() string { return c.Name() }

// CategoryFromName maps a short category name back to its category.
func CategoryFromName(name string) (Category, error) {
	for _, c := range Categories() {
		if c.Name() == name {
			return c, nil
		}
	}
	return CategoryUnset, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
}

// Categories lists the real categories, Unset excluded.
func Categories() []Category {
	return []Category{
		CategoryWaterAndHeating,
		CategoryVentilation,
		CategoryElectricity,
		CategoryIndustrial,
		CategoryRefrigeration,
	}
}

// Language identifies a translation language. The integer index is stored in
// the database and used as a translation key suffix; the lowercase name is
// used in config files and snapshot filenames.
type Language int

const (
	LangFin Language = iota + 1
	LangSwe
	LangEng
	LangNor
)

// Index returns the stable database index of the language.
func (l Language) Index() int { return int(l) }

// Name returns the canonical lowercase name.
func (l Language) Name() string {
	switch l {
	case LangFin:
		return "fin"
	case LangSwe:
		return "swe"
	case LangEng:
		return "eng"
	case LangNor:
		return "nor"
	default:
		return "unknown"
	}
}

func (l Language) String() string { return l.Name() }

// Languages lists every supported language.
func Languages() []Language {
	return []Language{LangFin, LangSwe, LangEng, LangNor}
}

// LanguageFromName parses a language name case-insensitively.
func LanguageFromName(val string) (Language, error) {
	lower := strings.ToLower(val)
	for _, l := range Languages() {
		if l.Name() == lower {
			return l, nil
		}
	}

	names := make([]string, 0, len(Languages()))
	for _, l := range Languages() {
		names = append(names, l.Name())
	}
	return 0, fmt.Errorf("%w: %q, expected one of [%s]", ErrInvalidLanguage, val, strings.Join(names, ", "))
}

// Operation annotates a product row with the supplier's change intent. It is
// informational only; the decoder never branches on it.
type Operation int

const (
	OperationEmpty Operation = iota
	OperationAdded
	OperationModified
	OperationDestroyed
)

// OperationFromCode maps the single interchange digit to an operation.
func OperationFromCode(val string) (Operation, error) {
	switch val {
	case "1":
		return OperationAdded, nil
	case "2":
		return OperationModified, nil
	case "3":
		return OperationDestroyed, nil
	default:
		return OperationEmpty, fmt.Errorf("%w: want 1-3, got %q", ErrInvalidOperation, val)
	}
}

// Name returns the short name stored on product rows.
func (o Operation) Name() string {
	switch o {
	case OperationAdded:
		return "add"
	case OperationModified:
		return "mod"
	case OperationDestroyed:
		return "del"
	default:
		return "-"
	}
}

func (o Operation) String() string { return o.Name() }

// Snapshot objects carry operations as single letters.
var operationJSON = map[Operation]string{
	OperationAdded:     "a",
	OperationModified:  "m",
	OperationDestroyed: "d",
	OperationEmpty:     "-",
}

func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(operationJSON[o])
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for op, tag := range operationJSON {
		if tag == s {
			*o = op
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidOperation, s)
}
