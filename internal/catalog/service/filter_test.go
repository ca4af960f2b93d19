package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"storefront_gateway/internal/catalog/domain"
	"storefront_gateway/internal/catalog/normalizer"
)

func fixtureProducts(t *testing.T) []domain.Product {
	t.Helper()
	products := normalizer.New(nil).Decode([]byte(testCatalog))
	if len(products) == 0 {
		t.Fatalf("fixture catalog did not decode")
	}
	return products
}

func TestFilterZeroCriteriaReturnsInput(t *testing.T) {
	products := fixtureProducts(t)
	if got := Filter(products, Criteria{}); len(got) != len(products) {
		t.Fatalf("expected all products, got %d", len(got))
	}
}

func TestFilterSearchMatchesNameAndBrand(t *testing.T) {
	products := fixtureProducts(t)

	if diff := cmp.Diff([]string{"Oil 20W50", "Oil 5W30"}, names(Filter(products, Criteria{Search: " oil "}))); diff != "" {
		t.Fatalf("unexpected name search (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Wrench", "Hammer"}, names(Filter(products, Criteria{Search: "stan"}))); diff != "" {
		t.Fatalf("unexpected brand search (-want +got):\n%s", diff)
	}
}

func TestFilterCombinesExactCriteria(t *testing.T) {
	products := fixtureProducts(t)

	got := Filter(products, Criteria{Brand: "michelin", WheelDiameter: "15"})
	if diff := cmp.Diff([]string{"Tire A", "Tire C"}, names(got)); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}

	got = Filter(products, Criteria{ChemicalClass: "SINTETICO"})
	if diff := cmp.Diff([]string{"Oil 5W30"}, names(got)); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestBrandsSortedAndDistinct(t *testing.T) {
	want := []string{"Goodyear", "Michelin", "Mobil", "Pirelli", "Shell", "Stanley"}
	if diff := cmp.Diff(want, Brands(fixtureProducts(t))); diff != "" {
		t.Fatalf("unexpected brands (-want +got):\n%s", diff)
	}
}
