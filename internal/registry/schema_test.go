package registry

import "testing"

func TestRawRowOrderAndLookup(t *testing.T) {
	row := &RawRow{}
	row.Set("b", "2")
	row.Set("a", "1")
	row.Set("b", "3")

	keys := row.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("unexpected key order: %v", keys)
	}
	if row.Value("b") != "3" {
		t.Fatalf("expected repeated key to keep latest value, got %q", row.Value("b"))
	}

	value, ok := row.Lookup("missing", "a")
	if !ok || value != "1" {
		t.Fatalf("expected lookup to find second candidate, got %q %v", value, ok)
	}
	if _, ok := row.Lookup("missing"); ok {
		t.Fatalf("expected lookup miss for absent key")
	}
}

func TestDetectProfileAttributes(t *testing.T) {
	row := &RawRow{}
	row.Set("ОргВклМСП.ИННЮЛ", "7707329152")
	row.Set("СведМН.КодРегион", "77")

	profile, ok := DetectProfile(row)
	if !ok {
		t.Fatalf("expected attribute row to match a profile")
	}
	if profile.Name != "attributes" {
		t.Fatalf("expected attributes profile, got %s", profile.Name)
	}
}

func TestDetectProfileElements(t *testing.T) {
	row := &RawRow{}
	row.Set("ИНН", "500100732259")
	row.Set("КодРегион", "50")

	profile, ok := DetectProfile(row)
	if !ok {
		t.Fatalf("expected element row to match a profile")
	}
	if profile.Name != "elements" {
		t.Fatalf("expected elements profile, got %s", profile.Name)
	}
}

func TestDetectProfileNoINN(t *testing.T) {
	row := &RawRow{}
	row.Set("НаимОрг", "ООО Ромашка")

	if _, ok := DetectProfile(row); ok {
		t.Fatalf("expected row without INN keys to match no profile")
	}
}
