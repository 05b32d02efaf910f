package geo

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/vincentspereira/weatherdeck/internal/common"
)

// Reverse lookup tolerances in degrees. Approximate registry entries cover
// a whole metro area and therefore match from further away.
const (
	exactTolerance  = 0.1
	approxTolerance = 0.5
)

// Resolver maps place queries onto the built-in registry. It is a pure
// function of registry + input; the only observable side effect is the
// simulated lookup latency.
type Resolver struct {
	entries []registryEntry
	latency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResolver creates a Resolver with the default registry. latency is the
// simulated per-lookup delay; rng drives best-effort fallback coordinates
// and may be seeded for reproducible tests.
func NewResolver(latency time.Duration, rng *rand.Rand) *Resolver {
	return &Resolver{
		entries: defaultRegistry,
		latency: latency,
		rng:     rng,
	}
}

// Resolve matches a free-text place name against the registry,
// case-insensitively. An empty or explicitly unknown query returns an empty
// list. A non-empty query with no registry match returns a single
// best-effort synthesized candidate so the pipeline never deadlocks on an
// unrecognized name.
func (r *Resolver) Resolve(ctx context.Context, query string) ([]ResolvedLocation, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" || strings.EqualFold(query, "unknown") {
		return nil, nil
	}

	var results []ResolvedLocation
	for _, e := range r.entries {
		if strings.EqualFold(e.Name, query) {
			results = append(results, e.resolved(query))
		}
	}
	if len(results) > 0 {
		return results, nil
	}

	return []ResolvedLocation{r.synthesizeCandidate(query)}, nil
}

// ResolveStructured matches by city and then filters by the optional state
// and country. If the filters narrow the city matches down to zero but the
// city match was unique, that single candidate is returned anyway rather
// than failing the whole query.
func (r *Resolver) ResolveStructured(ctx context.Context, q StructuredQuery) ([]ResolvedLocation, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	city := strings.TrimSpace(q.City)
	if city == "" {
		return nil, nil
	}

	var cityMatches []ResolvedLocation
	for _, e := range r.entries {
		if strings.EqualFold(e.Name, city) {
			cityMatches = append(cityMatches, e.resolved(city))
		}
	}
	if len(cityMatches) == 0 {
		return nil, nil
	}

	state := strings.TrimSpace(q.State)
	country := strings.TrimSpace(q.Country)

	var filtered []ResolvedLocation
	for _, loc := range cityMatches {
		if state != "" && !strings.EqualFold(loc.AdminRegion, state) {
			continue
		}
		if country != "" && !strings.EqualFold(loc.CountryCode, country) {
			continue
		}
		filtered = append(filtered, loc)
	}

	if len(filtered) == 0 && len(cityMatches) == 1 {
		return cityMatches, nil
	}
	return filtered, nil
}

// ResolveCoordinate maps a coordinate back to the nearest registry entry
// within tolerance. When nothing is close enough it returns a synthesized
// "Current Location" result carrying the input coordinate; this path never
// fails except on context cancellation.
func (r *Resolver) ResolveCoordinate(ctx context.Context, c Coordinate) (ResolvedLocation, error) {
	if err := r.wait(ctx); err != nil {
		return ResolvedLocation{}, err
	}

	bestIdx := -1
	bestDist := math.MaxFloat64
	for i, e := range r.entries {
		tol := exactTolerance
		if e.Approximate {
			tol = approxTolerance
		}
		dLat := math.Abs(e.Lat - c.Latitude)
		dLon := math.Abs(e.Lon - c.Longitude)
		if dLat > tol || dLon > tol {
			continue
		}
		dist := dLat*dLat + dLon*dLon
		if dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		return r.entries[bestIdx].resolved(c.String()), nil
	}

	return ResolvedLocation{
		DisplayName: "Current Location",
		MatchedName: c.String(),
		Coordinate:  c,
		Timezone:    DefaultTimezone,
		Synthesized: true,
	}, nil
}

// synthesizeCandidate builds a best-effort location for an unrecognized but
// plausible place name.
func (r *Resolver) synthesizeCandidate(query string) ResolvedLocation {
	r.mu.Lock()
	lat := r.rng.Float64()*120 - 55 // -55..65, keeps clear of the poles
	lon := r.rng.Float64()*360 - 180
	r.mu.Unlock()

	return ResolvedLocation{
		DisplayName: common.TitleCase(query),
		MatchedName: query,
		Coordinate:  Coordinate{Latitude: lat, Longitude: lon},
		Timezone:    DefaultTimezone,
		Synthesized: true,
	}
}

// wait simulates lookup latency while honouring context cancellation.
func (r *Resolver) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// resolved converts a registry entry into the normalized public shape.
func (e registryEntry) resolved(matched string) ResolvedLocation {
	tz := e.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	return ResolvedLocation{
		DisplayName: common.TitleCase(e.Name),
		MatchedName: matched,
		AdminRegion: common.TitleCase(e.AdminRegion),
		CountryCode: common.NormalizeCountry(e.CountryCode),
		Coordinate:  Coordinate{Latitude: e.Lat, Longitude: e.Lon},
		Timezone:    tz,
	}
}
