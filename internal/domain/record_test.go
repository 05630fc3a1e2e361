package domain

import (
	"encoding/json"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    Category
		wantErr bool
	}{
		{name: "numeric micro", code: "1", want: CategoryMicro},
		{name: "numeric small", code: "2", want: CategorySmall},
		{name: "numeric medium", code: "3", want: CategoryMedium},
		{name: "label micro", code: "Микропредприятие", want: CategoryMicro},
		{name: "label with extra spaces", code: " Малое  предприятие ", want: CategorySmall},
		{name: "label medium", code: "среднее предприятие", want: CategoryMedium},
		{name: "unknown code", code: "9", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := ParseCategory(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tt.code, category)
				}
				normErr, ok := IsNormalizationError(err)
				if !ok || normErr.Kind != ErrKindUnknownCategoryCode {
					t.Fatalf("expected unknown category error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.code, err)
			}
			if category != tt.want {
				t.Fatalf("expected %s for %q, got %s", tt.want, tt.code, category)
			}
		})
	}
}

func TestRawFieldsMarshalPreservesOrder(t *testing.T) {
	fields := RawFields{
		{Name: "b", Value: "2"},
		{Name: "a", Value: "1"},
	}

	data, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"b":"2","a":"1"}` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}

func TestRawFieldsMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(RawFields(nil))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("expected empty object, got %s", data)
	}
}

func TestRawFieldsUnmarshalRoundTrip(t *testing.T) {
	original := RawFields{
		{Name: "СвОКВЭДОсн.КодОКВЭД", Value: "62.01"},
		{Name: "ИдДок", Value: "abc"},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored RawFields
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(restored) != len(original) {
		t.Fatalf("expected %d fields, got %d", len(original), len(restored))
	}
	for i, field := range original {
		if restored[i] != field {
			t.Fatalf("field %d: expected %+v, got %+v", i, field, restored[i])
		}
	}
}

func TestRawFieldsUnmarshalRejectsNonObject(t *testing.T) {
	var fields RawFields
	if err := json.Unmarshal([]byte(`["a"]`), &fields); err == nil {
		t.Fatalf("expected error for JSON array input")
	}
}

func TestHasRegion(t *testing.T) {
	if (RegistryRecord{}).HasRegion() {
		t.Fatalf("expected no region on zero record")
	}
	if !(RegistryRecord{RegionCode: "77"}).HasRegion() {
		t.Fatalf("expected region on record with code")
	}
}
