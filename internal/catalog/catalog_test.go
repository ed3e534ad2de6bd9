package catalog

import "testing"

func TestProfilesOrderStable(t *testing.T) {
	a := Profiles()
	b := Profiles()
	if len(a) != 20 {
		t.Fatalf("expected 20 profiles, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("profile %d differs between calls: %+v vs %+v", i, a[i], b[i])
		}
	}
	if a[0].Symbol != "RELIANCE" || a[19].Symbol != "TITAN" {
		t.Fatalf("unexpected catalog bounds: %s .. %s", a[0].Symbol, a[19].Symbol)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"TCS", "TCS"},
		{"tcs", "TCS"},
		{"TCS.NS", "TCS"},
		{"tcs.ns", "TCS"},
		{"  reliance.ns ", "RELIANCE"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("infy.ns")
	if !ok {
		t.Fatalf("expected INFY to resolve")
	}
	if p.Symbol != "INFY" || p.Sector != "IT" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.BasePrice != 1580.30 {
		t.Fatalf("unexpected base price %v", p.BasePrice)
	}

	if _, ok := Lookup("FAKESYM"); ok {
		t.Fatalf("FAKESYM should not resolve")
	}
}

func TestByNameMatchesProfiles(t *testing.T) {
	m := ByName()
	for _, p := range Profiles() {
		got, ok := m[p.Symbol]
		if !ok {
			t.Fatalf("missing %s in map", p.Symbol)
		}
		if got != p {
			t.Fatalf("map entry mismatch for %s", p.Symbol)
		}
	}
}
