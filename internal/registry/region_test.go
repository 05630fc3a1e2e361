package registry

import "testing"

func TestGazetteerResolve(t *testing.T) {
	resolver := NewGazetteerResolver()

	tests := []struct {
		name     string
		address  string
		wantCode string
		wantOK   bool
	}{
		{name: "oblast first segment", address: "Московская область, г. Подольск, ул. Ленина", wantCode: "50", wantOK: true},
		{name: "federal city", address: "г. Санкт-Петербург, Невский проспект, д. 1", wantCode: "78", wantOK: true},
		{name: "postal code prefix", address: "125009, г. Москва, ул. Тверская, д. 7", wantCode: "77", wantOK: true},
		{name: "republic", address: "Республика Татарстан, г. Казань", wantCode: "16", wantOK: true},
		{name: "unknown region", address: "Страна Чудес, г. Зазеркалье", wantOK: false},
		{name: "empty", address: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, name, ok := resolver.Resolve(tt.address)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v for %q, got %v", tt.wantOK, tt.address, ok)
			}
			if !tt.wantOK {
				return
			}
			if code != tt.wantCode {
				t.Fatalf("expected code %s for %q, got %s", tt.wantCode, tt.address, code)
			}
			if name == "" {
				t.Fatalf("expected a region name for code %s", code)
			}
		})
	}
}

func TestNormalizeRegionCode(t *testing.T) {
	if got := NormalizeRegionCode("7"); got != "07" {
		t.Fatalf("expected 07, got %s", got)
	}
	if got := NormalizeRegionCode(" 77 "); got != "77" {
		t.Fatalf("expected 77, got %s", got)
	}
}

func TestRegionName(t *testing.T) {
	name, ok := RegionName("77")
	if !ok || name != "Москва" {
		t.Fatalf("expected Москва for code 77, got %q %v", name, ok)
	}
	if _, ok := RegionName("00"); ok {
		t.Fatalf("expected miss for unknown code")
	}
}
