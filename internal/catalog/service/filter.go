package service

import (
	"sort"
	"strings"

	"storefront_gateway/internal/catalog/domain"
)

// Criteria narrows an already fetched catalog on the client side.
// Empty fields do not filter.
type Criteria struct {
	Search        string
	Brand         string
	WheelDiameter string
	ChemicalClass string
	ToolGroup     string
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Filter returns the products matching every set criterion, in input order.
// Search is a case-insensitive substring match on name and brand.
func Filter(products []domain.Product, criteria Criteria) []domain.Product {
	if criteria.IsZero() {
		return products
	}

	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	exact := map[string]string{
		domain.FieldBrand:         strings.TrimSpace(criteria.Brand),
		domain.FieldWheelDiameter: strings.TrimSpace(criteria.WheelDiameter),
		domain.FieldChemicalClass: strings.TrimSpace(criteria.ChemicalClass),
		domain.FieldToolGroup:     strings.TrimSpace(criteria.ToolGroup),
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if search != "" && !containsFold(product, search) {
			continue
		}
		if !matchesExact(product, exact) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}

func containsFold(product domain.Product, search string) bool {
	return strings.Contains(strings.ToLower(product.Name()), search) ||
		strings.Contains(strings.ToLower(product.Brand()), search)
}

func matchesExact(product domain.Product, exact map[string]string) bool {
	for field, want := range exact {
		if want == "" {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(product.StringField(field)), want) {
			return false
		}
	}
	return true
}

// Brands returns the distinct non-empty brands, sorted.
func Brands(products []domain.Product) []string {
	seen := make(map[string]struct{})
	for _, product := range products {
		brand := strings.TrimSpace(product.Brand())
		if brand != "" {
			seen[brand] = struct{}{}
		}
	}

	brands := make([]string, 0, len(seen))
	for brand := range seen {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	return brands
}
