// Package normalizer collapses the loosely shaped upstream catalog payload
// into an ordered list of products that all carry a stable identifier.
package normalizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"storefront_gateway/internal/catalog/domain"
	"storefront_gateway/platform/logger"
	"storefront_gateway/platform/sanitize"
)

const payloadField = "data"

// Shape discriminates the upstream payload variants.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeSequence
	ShapeMapping
	ShapeSingle
)

func (s Shape) String() string {
	switch s {
	case ShapeSequence:
		return "sequence"
	case ShapeMapping:
		return "mapping"
	case ShapeSingle:
		return "single"
	default:
		return "invalid"
	}
}

// RawCatalog is the upstream payload after shape resolution. Records are in
// output order.
type RawCatalog struct {
	Shape   Shape
	Records []map[string]interface{}
	// Skipped counts entries dropped during resolution.
	Skipped int
}

// Resolve decides the payload shape once. It never fails: anything that is
// not an object or array resolves to ShapeInvalid with no records. A decoded
// map carries no key order, so mapping values come out in sorted key order;
// Decode keeps the document order instead.
func Resolve(raw interface{}) RawCatalog {
	return resolve(raw, nil)
}

func resolve(raw interface{}, order []string) RawCatalog {
	payload := raw
	if obj, ok := raw.(map[string]interface{}); ok {
		if nested, exists := obj[payloadField]; exists && nested != nil {
			payload = nested
		}
	}

	switch typed := payload.(type) {
	case []interface{}:
		records, skipped := sequence(typed)
		return RawCatalog{Shape: ShapeSequence, Records: records, Skipped: skipped}
	case map[string]interface{}:
		if name, ok := typed[domain.FieldName]; ok && !domain.IsEmptyValue(name) {
			return RawCatalog{Shape: ShapeSingle, Records: []map[string]interface{}{typed}}
		}
		records, skipped := mapping(typed, order)
		return RawCatalog{Shape: ShapeMapping, Records: records, Skipped: skipped}
	default:
		return RawCatalog{Shape: ShapeInvalid}
	}
}

// sequence keeps every object entry, empty ones included.
func sequence(values []interface{}) ([]map[string]interface{}, int) {
	records := make([]map[string]interface{}, 0, len(values))
	skipped := 0
	for _, value := range values {
		record, ok := value.(map[string]interface{})
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}
	return records, skipped
}

// mapping takes the object's values in key order, dropping null, empty and
// non-object values.
func mapping(obj map[string]interface{}, order []string) ([]map[string]interface{}, int) {
	keys := orderedKeys(obj, order)
	records := make([]map[string]interface{}, 0, len(keys))
	skipped := 0
	for _, key := range keys {
		record, ok := obj[key].(map[string]interface{})
		if !ok || len(record) == 0 {
			skipped++
			continue
		}
		records = append(records, record)
	}
	return records, skipped
}

// orderedKeys lists obj's keys following order first, then any remaining
// keys sorted.
func orderedKeys(obj map[string]interface{}, order []string) []string {
	keys := make([]string, 0, len(obj))
	seen := make(map[string]bool, len(obj))
	for _, key := range order {
		if _, ok := obj[key]; ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	rest := make([]string, 0, len(obj)-len(keys))
	for key := range obj {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// keyOrder returns, in document order, the keys of the object Resolve would
// treat as the payload: the "data" object when present, else the top level.
// It returns nil when body is not an object.
func keyOrder(body []byte) []string {
	keys, values, ok := objectKeys(body)
	if !ok {
		return nil
	}
	for i := len(keys) - 1; i >= 0; i-- {
		if keys[i] != payloadField {
			continue
		}
		if nested, _, ok := objectKeys(values[i]); ok {
			return nested
		}
		break
	}
	return keys
}

func objectKeys(body []byte) ([]string, []json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, nil, false
	}
	var keys []string
	var values []json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, false
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	return keys, values, true
}

// Normalizer turns raw payloads into products.
type Normalizer struct {
	log *logger.Logger
}

// New creates a normalizer. A nil logger discards warnings.
func New(log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Normalizer{log: log}
}

// Decode parses an upstream body and normalizes it. Undecodable bodies
// produce an empty list and a warning.
func (n *Normalizer) Decode(body []byte) []domain.Product {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		n.log.CatalogShapeWarning("undecodable catalog body: "+err.Error(), "invalid")
		return []domain.Product{}
	}
	return n.normalize(raw, keyOrder(body))
}

// Normalize resolves the payload shape and assigns identifiers. The result
// is never nil.
func (n *Normalizer) Normalize(raw interface{}) []domain.Product {
	return n.normalize(raw, nil)
}

func (n *Normalizer) normalize(raw interface{}, order []string) []domain.Product {
	resolved := resolve(raw, order)
	switch {
	case resolved.Shape == ShapeInvalid:
		n.log.CatalogShapeWarning(fmt.Sprintf("catalog response is not an object (%T)", raw), resolved.Shape.String())
	case resolved.Skipped > 0:
		n.log.CatalogShapeWarning(fmt.Sprintf("skipped %d empty or non-object entries", resolved.Skipped), resolved.Shape.String())
	}
	return Assign(resolved.Records)
}

// Assign builds products in order, synthesizing identifiers for records
// without one. A synthesized identifier that clashes with an upstream one
// gets a numeric suffix. Input maps are not modified.
func Assign(records []map[string]interface{}) []domain.Product {
	taken := make(map[string]bool, len(records))
	for _, record := range records {
		if id, ok := upstreamID(record); ok {
			taken[id] = true
		}
	}

	products := make([]domain.Product, 0, len(records))
	for index, record := range records {
		id, ok := upstreamID(record)
		if !ok {
			id = unique(synthesizedID(record, index), taken)
			taken[id] = true
		}
		products = append(products, domain.NewProduct(id, record))
	}
	return products
}

func upstreamID(record map[string]interface{}) (string, bool) {
	existing, ok := record[domain.FieldID]
	if !ok || domain.IsEmptyValue(existing) {
		return "", false
	}
	return domain.ValueString(existing), true
}

func synthesizedID(record map[string]interface{}, index int) string {
	if name, ok := record[domain.FieldName]; ok && !domain.IsEmptyValue(name) {
		return sanitize.Alphanumeric(domain.ValueString(name)) + "_" + strconv.Itoa(index)
	}
	return "product_" + strconv.Itoa(index)
}

func unique(candidate string, taken map[string]bool) string {
	if !taken[candidate] {
		return candidate
	}
	for n := 2; ; n++ {
		next := candidate + "_" + strconv.Itoa(n)
		if !taken[next] {
			return next
		}
	}
}
