package domain

import "testing"

func TestKindFromINN(t *testing.T) {
	tests := []struct {
		name    string
		inn     string
		want    EntityKind
		wantErr bool
	}{
		{name: "legal entity", inn: "7707329152", want: KindLegalEntity},
		{name: "all zero legal entity", inn: "0000000000", want: KindLegalEntity},
		{name: "entrepreneur", inn: "500100732259", want: KindIndividualEntrepreneur},
		{name: "too short", inn: "12345", wantErr: true},
		{name: "eleven digits", inn: "12345678901", wantErr: true},
		{name: "too long", inn: "1234567890123", wantErr: true},
		{name: "letters", inn: "77073291ab", wantErr: true},
		{name: "embedded space", inn: "77073 9152", wantErr: true},
		{name: "empty", inn: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := KindFromINN(tt.inn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got kind %s", tt.inn, kind)
				}
				normErr, ok := IsNormalizationError(err)
				if !ok || normErr.Kind != ErrKindMalformedINN {
					t.Fatalf("expected malformed inn error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.inn, err)
			}
			if kind != tt.want {
				t.Fatalf("expected kind %s for %q, got %s", tt.want, tt.inn, kind)
			}
		})
	}
}

func TestValidINN(t *testing.T) {
	if !ValidINN("7707329152") {
		t.Fatalf("expected 10-digit inn to be valid")
	}
	if !ValidINN("500100732259") {
		t.Fatalf("expected 12-digit inn to be valid")
	}
	if ValidINN("12345") {
		t.Fatalf("expected 5-digit inn to be invalid")
	}
}
