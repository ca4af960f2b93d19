// Package domain holds the catalog record and category types shared by the
// normalizer, the accessor service and the HTTP layer.
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Upstream field names.
const (
	FieldID            = "id"
	FieldName          = "DMA_NOMBREITEM"
	FieldBusinessLine  = "DMA_LINEANEGOCIO"
	FieldBrand         = "DMA_MARCA"
	FieldWheelDiameter = "DMA_RIN"
	FieldChemicalClass = "DMA_CLASE"
	FieldToolGroup     = "DMA_GRUPO"
)

// Product is an immutable catalog record: a stable identifier plus the
// upstream fields it was built from.
type Product struct {
	id     string
	fields map[string]interface{}
}

// NewProduct builds a record from upstream fields. The map is copied.
func NewProduct(id string, fields map[string]interface{}) Product {
	copied := make(map[string]interface{}, len(fields)+1)
	for key, value := range fields {
		copied[key] = value
	}
	copied[FieldID] = id
	return Product{id: id, fields: copied}
}

// ID returns the stable identifier.
func (p Product) ID() string { return p.id }

// Name returns the item name, or "" when absent.
func (p Product) Name() string { return p.StringField(FieldName) }

// BusinessLine returns the business-line discriminator.
func (p Product) BusinessLine() string { return p.StringField(FieldBusinessLine) }

// Brand returns the brand, or "" when absent.
func (p Product) Brand() string { return p.StringField(FieldBrand) }

// Category resolves the record's category from its business line.
func (p Product) Category() Category { return CategoryFromBusinessLine(p.BusinessLine()) }

// Field returns the raw value stored under key.
func (p Product) Field(key string) (interface{}, bool) {
	value, ok := p.fields[key]
	return value, ok
}

// HasField reports whether key is present with a non-empty value.
func (p Product) HasField(key string) bool {
	value, ok := p.fields[key]
	return ok && !IsEmptyValue(value)
}

// StringField returns the value under key in string form.
func (p Product) StringField(key string) string {
	value, ok := p.fields[key]
	if !ok {
		return ""
	}
	return ValueString(value)
}

// Fields returns a copy of all fields, including the identifier.
func (p Product) Fields() map[string]interface{} {
	copied := make(map[string]interface{}, len(p.fields))
	for key, value := range p.fields {
		copied[key] = value
	}
	return copied
}

// MarshalJSON encodes the record as its flat field object.
func (p Product) MarshalJSON() ([]byte, error) {
	if p.fields == nil {
		return json.Marshal(map[string]interface{}{FieldID: p.id})
	}
	return json.Marshal(p.fields)
}

// ValueString renders a decoded JSON value as a string. Numbers drop
// trailing zeros so 15 and "15" compare equal.
func ValueString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

// IsEmptyValue reports nil, blank strings and empty objects or arrays.
func IsEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case map[string]interface{}:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	default:
		return false
	}
}
