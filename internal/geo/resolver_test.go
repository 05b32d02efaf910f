package geo

import (
	"context"
	"math/rand"
	"testing"
)

func newTestResolver() *Resolver {
	return NewResolver(0, rand.New(rand.NewSource(1)))
}

func TestResolveLondonReturnsAllCandidates(t *testing.T) {
	r := newTestResolver()

	results, err := r.Resolve(context.Background(), "london")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 candidates for London, got %d", len(results))
	}

	want := map[string]bool{
		"Europe/London":    false,
		"America/Toronto":  false,
		"America/New_York": false,
	}
	for _, loc := range results {
		seen, ok := want[loc.Timezone]
		if !ok {
			t.Errorf("unexpected timezone %q", loc.Timezone)
			continue
		}
		if seen {
			t.Errorf("duplicate timezone %q", loc.Timezone)
		}
		want[loc.Timezone] = true
		if loc.DisplayName != "London" {
			t.Errorf("expected display name London, got %q", loc.DisplayName)
		}
		if loc.Synthesized {
			t.Errorf("registry candidate should not be synthesized")
		}
	}
	for tz, seen := range want {
		if !seen {
			t.Errorf("missing candidate with timezone %q", tz)
		}
	}
}

func TestResolveEmptyAndUnknown(t *testing.T) {
	r := newTestResolver()

	for _, q := range []string{"", "   ", "unknown", "Unknown"} {
		results, err := r.Resolve(context.Background(), q)
		if err != nil {
			t.Fatalf("query %q: unexpected error: %v", q, err)
		}
		if len(results) != 0 {
			t.Errorf("query %q: expected no candidates, got %d", q, len(results))
		}
	}
}

func TestResolveUnrecognizedNameSynthesizesCandidate(t *testing.T) {
	r := newTestResolver()

	results, err := r.Resolve(context.Background(), "porkkalanniemi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 fallback candidate, got %d", len(results))
	}

	loc := results[0]
	if !loc.Synthesized {
		t.Error("fallback candidate should be marked synthesized")
	}
	if loc.DisplayName != "Porkkalanniemi" {
		t.Errorf("expected title-cased display name, got %q", loc.DisplayName)
	}
	if loc.Timezone != DefaultTimezone {
		t.Errorf("expected default timezone %q, got %q", DefaultTimezone, loc.Timezone)
	}
	if !loc.Coordinate.Valid() {
		t.Errorf("fallback coordinate out of range: %v", loc.Coordinate)
	}
}

func TestResolveStructuredFilters(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name    string
		query   StructuredQuery
		wantLen int
		wantTZ  string
	}{
		{
			name:    "country narrows to one",
			query:   StructuredQuery{City: "London", Country: "ca"},
			wantLen: 1,
			wantTZ:  "America/Toronto",
		},
		{
			name:    "state narrows to one",
			query:   StructuredQuery{City: "london", State: "Kentucky"},
			wantLen: 1,
			wantTZ:  "America/New_York",
		},
		{
			name:    "no filters keeps all",
			query:   StructuredQuery{City: "London"},
			wantLen: 3,
		},
		{
			name:    "unmatched city yields nothing",
			query:   StructuredQuery{City: "Atlantis", Country: "GR"},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := r.ResolveStructured(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != tt.wantLen {
				t.Fatalf("expected %d results, got %d", tt.wantLen, len(results))
			}
			if tt.wantTZ != "" && results[0].Timezone != tt.wantTZ {
				t.Errorf("expected timezone %q, got %q", tt.wantTZ, results[0].Timezone)
			}
		})
	}
}

func TestResolveStructuredWidensUniqueCityMatch(t *testing.T) {
	r := newTestResolver()

	// Paris has a single registry entry; a filter that matches nothing
	// should still surface that unique candidate.
	results, err := r.ResolveStructured(context.Background(), StructuredQuery{City: "Paris", State: "Texas"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected the unique city match back, got %d results", len(results))
	}
	if results[0].Timezone != "Europe/Paris" {
		t.Errorf("expected Europe/Paris, got %q", results[0].Timezone)
	}
}

func TestResolveCoordinateRoundTrip(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()

	results, err := r.Resolve(ctx, "Helsinki")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 Helsinki candidate, got %d", len(results))
	}

	back, err := r.ResolveCoordinate(ctx, results[0].Coordinate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Timezone != results[0].Timezone {
		t.Errorf("round trip changed timezone: %q -> %q", results[0].Timezone, back.Timezone)
	}
	if back.Synthesized {
		t.Error("round trip should hit the registry, not synthesize")
	}
}

func TestResolveCoordinateFallback(t *testing.T) {
	r := newTestResolver()

	// Middle of the South Atlantic; nowhere near any registry entry.
	coord := Coordinate{Latitude: -35.0, Longitude: -20.0}
	loc, err := r.ResolveCoordinate(context.Background(), coord)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.DisplayName != "Current Location" {
		t.Errorf("expected Current Location fallback, got %q", loc.DisplayName)
	}
	if loc.Coordinate != coord {
		t.Errorf("fallback should carry the input coordinate, got %v", loc.Coordinate)
	}
	if loc.Timezone != DefaultTimezone {
		t.Errorf("expected default timezone, got %q", loc.Timezone)
	}
}

func TestResolveHonoursContextCancellation(t *testing.T) {
	r := newTestResolver()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Resolve(ctx, "London"); err == nil {
		t.Error("expected error from cancelled context")
	}
}
