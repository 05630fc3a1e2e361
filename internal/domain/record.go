package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category is the published SME size category of a registry entry.
type Category string

const (
	CategoryMicro  Category = "micro"
	CategorySmall  Category = "small"
	CategoryMedium Category = "medium"
)

// categoryCodes maps the category spellings seen across snapshot vintages.
// Newer releases publish a numeric code, older ones the full Russian label.
var categoryCodes = map[string]Category{
	"1":                   CategoryMicro,
	"2":                   CategorySmall,
	"3":                   CategoryMedium,
	"микропредприятие":    CategoryMicro,
	"малое предприятие":   CategorySmall,
	"среднее предприятие": CategoryMedium,
}

// ParseCategory resolves a raw category code to the canonical enum. Unknown
// codes are an error rather than a guessed default.
func ParseCategory(code string) (Category, error) {
	normalized := strings.ToLower(strings.Join(strings.Fields(code), " "))
	if category, ok := categoryCodes[normalized]; ok {
		return category, nil
	}
	return "", &NormalizationError{Kind: ErrKindUnknownCategoryCode, Field: "category", Value: code}
}

// RawField is one unconsumed source column, preserved verbatim.
type RawField struct {
	Name  string
	Value string
}

// RawFields keeps extra source columns in their original order. They are
// carried for forward compatibility and never interpreted.
type RawFields []RawField

// MarshalJSON renders the fields as a JSON object in source order.
func (f RawFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores the fields preserving the object key order.
func (f *RawFields) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("raw fields: expected JSON object, got %v", token)
	}

	fields := RawFields{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := keyToken.(string)
		if !ok {
			return fmt.Errorf("raw fields: unexpected key token %v", keyToken)
		}
		var value string
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("raw fields: value for %q: %w", key, err)
		}
		fields = append(fields, RawField{Name: key, Value: value})
	}

	*f = fields
	return nil
}

// RegistryRecord is the canonical form of one registry entry, keyed by INN.
type RegistryRecord struct {
	INN          string
	Kind         EntityKind
	Category     Category
	RegionCode   string // empty when the source gave no resolvable region
	RegionName   string
	SnapshotDate time.Time
	SourceFile   string
	RawFields    RawFields
}

// HasRegion reports whether the record carries a resolved region code.
func (r RegistryRecord) HasRegion() bool {
	return r.RegionCode != ""
}
