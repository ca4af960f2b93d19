package domain

import "strings"

// Category is the closed set of business lines the storefront knows.
type Category int

const (
	// CategoryUnknown selects the whole catalog, unfiltered.
	CategoryUnknown Category = iota
	CategoryTires
	CategoryLubricants
	CategoryTools
)

// Business-line constants as sent by the upstream service.
const (
	BusinessLineTires      = "LLANTAS"
	BusinessLineLubricants = "LUBRICANTES"
	BusinessLineTools      = "HERRAMIENTAS"
)

// ParseCategory maps a user-facing name to a category.
func ParseCategory(name string) Category {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tires", "llantas":
		return CategoryTires
	case "lubricants", "lubricantes":
		return CategoryLubricants
	case "tools", "herramientas":
		return CategoryTools
	default:
		return CategoryUnknown
	}
}

// CategoryFromBusinessLine matches an upstream business-line value exactly.
func CategoryFromBusinessLine(line string) Category {
	switch line {
	case BusinessLineTires:
		return CategoryTires
	case BusinessLineLubricants:
		return CategoryLubricants
	case BusinessLineTools:
		return CategoryTools
	default:
		return CategoryUnknown
	}
}

// String returns the user-facing name.
func (c Category) String() string {
	switch c {
	case CategoryTires:
		return "tires"
	case CategoryLubricants:
		return "lubricants"
	case CategoryTools:
		return "tools"
	default:
		return "unknown"
	}
}

// BusinessLine returns the upstream constant, or "" for CategoryUnknown.
func (c Category) BusinessLine() string {
	switch c {
	case CategoryTires:
		return BusinessLineTires
	case CategoryLubricants:
		return BusinessLineLubricants
	case CategoryTools:
		return BusinessLineTools
	default:
		return ""
	}
}

// SimilarityField names the field related items must share with their source.
func (c Category) SimilarityField() string {
	switch c {
	case CategoryTires:
		return FieldWheelDiameter
	case CategoryLubricants:
		return FieldChemicalClass
	case CategoryTools:
		return FieldToolGroup
	default:
		return ""
	}
}

// Matches reports whether p belongs to c. Every record matches CategoryUnknown.
func (c Category) Matches(p Product) bool {
	if c == CategoryUnknown {
		return true
	}
	return p.BusinessLine() == c.BusinessLine()
}
