package domain

import (
	"encoding/json"
	"testing"
)

func TestProductIsImmutable(t *testing.T) {
	fields := map[string]interface{}{FieldName: "Tire A"}
	p := NewProduct("TireA_0", fields)

	fields[FieldName] = "changed"
	if p.Name() != "Tire A" {
		t.Fatalf("expected record to keep its own copy, got %q", p.Name())
	}

	out := p.Fields()
	out[FieldName] = "mutated"
	if p.Name() != "Tire A" {
		t.Fatalf("expected Fields to return a copy")
	}
	if p.StringField(FieldID) != "TireA_0" {
		t.Fatalf("expected id field to follow the identifier")
	}
}

func TestProductMarshalJSONIsFlat(t *testing.T) {
	p := NewProduct("TireA_0", map[string]interface{}{FieldName: "Tire A", FieldWheelDiameter: float64(15)})
	encoded, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded["id"] != "TireA_0" || decoded[FieldName] != "Tire A" || decoded[FieldWheelDiameter] != float64(15) {
		t.Fatalf("unexpected encoding %s", encoded)
	}
}

func TestValueString(t *testing.T) {
	if ValueString(float64(15)) != "15" || ValueString("15") != "15" {
		t.Fatalf("expected numeric and string 15 to render alike")
	}
	if ValueString(15.5) != "15.5" {
		t.Fatalf("expected fractional number to keep its decimals")
	}
	if ValueString(nil) != "" {
		t.Fatalf("expected nil to render empty")
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"tires":        CategoryTires,
		" LLANTAS ":    CategoryTires,
		"lubricants":   CategoryLubricants,
		"Herramientas": CategoryTools,
		"":             CategoryUnknown,
		"accessories":  CategoryUnknown,
	}
	for in, want := range cases {
		if got := ParseCategory(in); got != want {
			t.Fatalf("ParseCategory(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestCategoryFromBusinessLineIsExact(t *testing.T) {
	if CategoryFromBusinessLine("LLANTAS") != CategoryTires {
		t.Fatalf("expected exact constant to match")
	}
	if CategoryFromBusinessLine("llantas") != CategoryUnknown {
		t.Fatalf("expected business line match to be case-sensitive")
	}
}

func TestCategoryIsTotal(t *testing.T) {
	for _, c := range []Category{CategoryTires, CategoryLubricants, CategoryTools, CategoryUnknown} {
		if c == CategoryUnknown {
			if c.BusinessLine() != "" || c.SimilarityField() != "" {
				t.Fatalf("unknown category must not carry a business line or similarity field")
			}
			continue
		}
		if CategoryFromBusinessLine(c.BusinessLine()) != c {
			t.Fatalf("category %s does not round-trip through its business line", c)
		}
		if ParseCategory(c.String()) != c {
			t.Fatalf("category %s does not round-trip through its name", c)
		}
		if c.SimilarityField() == "" {
			t.Fatalf("category %s has no similarity field", c)
		}
	}
}

func TestCategoryMatches(t *testing.T) {
	tire := NewProduct("a", map[string]interface{}{FieldBusinessLine: BusinessLineTires})
	tool := NewProduct("b", map[string]interface{}{FieldBusinessLine: BusinessLineTools})

	if !CategoryTires.Matches(tire) || CategoryTires.Matches(tool) {
		t.Fatalf("unexpected tire matching")
	}
	if !CategoryUnknown.Matches(tire) || !CategoryUnknown.Matches(tool) {
		t.Fatalf("unknown category must match everything")
	}
}
