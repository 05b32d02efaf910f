package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/vincentspereira/weatherdeck/internal/common"
	"github.com/vincentspereira/weatherdeck/internal/geo"
	"github.com/vincentspereira/weatherdeck/internal/util"
	"github.com/vincentspereira/weatherdeck/internal/weather"
)

// Resolver is the geocoding dependency.
type Resolver interface {
	Resolve(ctx context.Context, query string) ([]geo.ResolvedLocation, error)
	ResolveStructured(ctx context.Context, q geo.StructuredQuery) ([]geo.ResolvedLocation, error)
	ResolveCoordinate(ctx context.Context, c geo.Coordinate) (geo.ResolvedLocation, error)
}

// Synthesizer is the weather generation dependency.
type Synthesizer interface {
	Synthesize(coord geo.Coordinate, timezone string) (weather.Bundle, error)
}

// Session is the resolution orchestrator: one logical user session owning
// the whole active state. Every mutation is a whole-state swap under one
// mutex, keyed by a monotonically increasing sequence token so that a
// stale, slow resolution can never overwrite state set by a newer one
// (last request wins; superseded results are discarded, not merged).
type Session struct {
	resolver     Resolver
	synth        Synthesizer
	clock        util.Clock
	breaker      *gobreaker.CircuitBreaker
	defaultPlace string

	mu            sync.Mutex
	seq           uint64
	state         State
	candidates    []geo.ResolvedLocation
	pending       *geo.ResolvedLocation
	bundle        *weather.Bundle
	selectedDay   weather.CivilDate
	selectedHours []weather.HourlyRecord
	hasSelection  bool
	notice        string
	lastErr       string
}

// New creates an idle session. defaultPlace is resolved as a fallback when
// geolocation fails before any dataset is active.
func New(resolver Resolver, synth Synthesizer, clock util.Clock, defaultPlace string) *Session {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Session{
		resolver:     resolver,
		synth:        synth,
		clock:        clock,
		breaker:      cb,
		defaultPlace: defaultPlace,
		state:        StateIdle,
	}
}

// SubmitCity resolves a free-text place name and routes the outcome:
// zero candidates to NotFound, one incomplete candidate to Refining, one
// complete candidate straight to Ready, several to Disambiguating.
func (s *Session) SubmitCity(ctx context.Context, city string) error {
	token := s.begin()

	locs, err := s.resolveText(ctx, city)
	if err != nil {
		s.fail(token, err)
		return err
	}

	switch {
	case len(locs) == 0:
		s.commit(token, func() {
			s.state = StateNotFound
			s.bundle = nil
			s.candidates = nil
			s.pending = nil
			s.clearSelection()
		})
		return ErrLocationNotFound

	case len(locs) == 1:
		loc := locs[0]
		if needsRefinement(loc) {
			s.commit(token, func() {
				s.state = StateRefining
				s.pending = &loc
				s.candidates = nil
			})
			return nil
		}
		return s.activate(token, loc)

	default:
		s.commit(token, func() {
			s.state = StateDisambiguating
			s.candidates = locs
			s.pending = nil
		})
		return nil
	}
}

// SelectCandidate picks one disambiguation candidate by index.
func (s *Session) SelectCandidate(ctx context.Context, index int) error {
	s.mu.Lock()
	if s.state != StateDisambiguating || index < 0 || index >= len(s.candidates) {
		s.mu.Unlock()
		return fmt.Errorf("%w: no candidate at index %d", ErrInvalidIntent, index)
	}
	loc := s.candidates[index]
	s.mu.Unlock()

	return s.activate(s.begin(), loc)
}

// SubmitRefinement re-queries with structured detail. Zero refined results
// fall back to the typed text paired with the pending candidate's
// coordinate and timezone, so a refinement attempt never dead-ends in
// NotFound. One result proceeds to Ready; several re-enter disambiguation.
func (s *Session) SubmitRefinement(ctx context.Context, q geo.StructuredQuery) error {
	s.mu.Lock()
	if s.state != StateRefining || s.pending == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: no refinement pending", ErrInvalidIntent)
	}
	pending := *s.pending
	s.mu.Unlock()

	token := s.begin()

	locs, err := s.resolveStructured(ctx, q)
	if err != nil {
		// Keep the refinement pending; the user can retry or skip.
		s.commit(token, func() {
			s.state = StateRefining
			s.lastErr = err.Error()
		})
		return err
	}

	switch {
	case len(locs) == 0:
		loc := geo.ResolvedLocation{
			DisplayName: common.TitleCase(q.City),
			MatchedName: q.City,
			AdminRegion: common.TitleCase(q.State),
			CountryCode: common.NormalizeCountry(q.Country),
			Coordinate:  pending.Coordinate,
			Timezone:    pending.Timezone,
			Synthesized: true,
		}
		return s.activate(token, loc)

	case len(locs) == 1:
		return s.activate(token, locs[0])

	default:
		s.commit(token, func() {
			s.state = StateDisambiguating
			s.candidates = locs
			s.pending = nil
		})
		return nil
	}
}

// SkipRefinement proceeds with the unrefined pending candidate as-is.
func (s *Session) SkipRefinement(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateRefining || s.pending == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: no refinement pending", ErrInvalidIntent)
	}
	loc := *s.pending
	s.mu.Unlock()

	return s.activate(s.begin(), loc)
}

// SubmitCoordinate reverse-resolves a geolocation fix and activates the
// result directly; the reverse path never needs refinement.
func (s *Session) SubmitCoordinate(ctx context.Context, coord geo.Coordinate) error {
	if !coord.Valid() {
		return fmt.Errorf("%w: coordinate out of range", ErrGeocodingFailure)
	}

	token := s.begin()

	loc, err := s.resolveCoordinate(ctx, coord)
	if err != nil {
		s.fail(token, err)
		return err
	}
	return s.activate(token, loc)
}

// GeolocationFailed records a user-visible notice for a denied or
// unsupported geolocation request. Only when no dataset is active does it
// additionally resolve the configured default place as a fallback.
func (s *Session) GeolocationFailed(ctx context.Context, code, message string) error {
	s.mu.Lock()
	hasDataset := s.bundle != nil
	s.mu.Unlock()

	notice := fmt.Sprintf("geolocation unavailable (%s): %s", code, message)

	if hasDataset {
		s.mu.Lock()
		s.notice = notice
		s.mu.Unlock()
		return nil
	}

	err := s.SubmitCity(ctx, s.defaultPlace)

	s.mu.Lock()
	s.notice = fmt.Sprintf("%s; showing %s", notice, s.defaultPlace)
	s.mu.Unlock()
	return err
}

// SelectDay filters the cached hourly series down to the picked calendar
// day. Synchronous and read-only with respect to the series; the session
// stays Ready throughout.
func (s *Session) SelectDay(date weather.CivilDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady || s.bundle == nil || len(s.bundle.Hourly) == 0 {
		return fmt.Errorf("%w: no active hourly series", ErrHourlyWindow)
	}
	loc, err := time.LoadLocation(s.bundle.Location.Timezone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHourlyWindow, err)
	}

	s.selectedDay = date
	s.selectedHours = weather.SelectHoursForDay(s.bundle.Hourly, loc, date, s.clock.Now())
	s.hasSelection = true
	return nil
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	State             State                      `json:"state"`
	Loading           bool                       `json:"loading"`
	Location          *geo.ResolvedLocation      `json:"location,omitempty"`
	Current           *weather.CurrentConditions `json:"current,omitempty"`
	Daily             []weather.DailySummary     `json:"daily,omitempty"`
	Candidates        []geo.ResolvedLocation     `json:"disambiguationCandidates,omitempty"`
	RefinementPending bool                       `json:"refinementPending"`
	SelectedDay       *weather.CivilDate         `json:"selectedDay,omitempty"`
	SelectedHours     []weather.HourlyRecord     `json:"selectedHours,omitempty"`
	Notice            string                     `json:"notice,omitempty"`
	Error             string                     `json:"error,omitempty"`
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:             s.state,
		Loading:           s.state == StateResolving,
		RefinementPending: s.state == StateRefining,
		Notice:            s.notice,
		Error:             s.lastErr,
	}
	if s.bundle != nil {
		loc := s.bundle.Location
		cur := s.bundle.Current
		snap.Location = &loc
		snap.Current = &cur
		snap.Daily = append([]weather.DailySummary(nil), s.bundle.Daily...)
	}
	if len(s.candidates) > 0 {
		snap.Candidates = append([]geo.ResolvedLocation(nil), s.candidates...)
	}
	if s.hasSelection {
		day := s.selectedDay
		snap.SelectedDay = &day
		snap.SelectedHours = append([]weather.HourlyRecord(nil), s.selectedHours...)
	}
	return snap
}

// activate synthesizes a bundle for loc and swaps it in as the active
// dataset, provided the operation has not been superseded.
func (s *Session) activate(token uint64, loc geo.ResolvedLocation) error {
	bundle, err := s.synth.Synthesize(loc.Coordinate, loc.Timezone)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrSynthesisFailure, err)
		s.commit(token, func() {
			s.state = StateIdle
			s.bundle = nil
			s.candidates = nil
			s.pending = nil
			s.clearSelection()
			s.lastErr = wrapped.Error()
		})
		return wrapped
	}
	bundle.Location = loc

	applied := s.commit(token, func() {
		s.state = StateReady
		s.bundle = &bundle
		s.candidates = nil
		s.pending = nil
		s.clearSelection()
	})
	if !applied {
		log.Printf("INFO: discarding superseded resolution for %s", loc.DisplayName)
	}
	return nil
}

// begin starts a new resolution cycle and returns its sequence token.
func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = StateResolving
	s.lastErr = ""
	s.notice = ""
	return s.seq
}

// commit applies fn only if token still identifies the newest operation.
func (s *Session) commit(token uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		return false
	}
	fn()
	return true
}

// fail records a resolution failure without disturbing a previously active
// dataset: the state falls back to Ready when a bundle exists, Idle
// otherwise.
func (s *Session) fail(token uint64, err error) {
	s.commit(token, func() {
		if s.bundle != nil {
			s.state = StateReady
		} else {
			s.state = StateIdle
		}
		s.lastErr = err.Error()
	})
}

func (s *Session) clearSelection() {
	s.selectedDay = weather.CivilDate{}
	s.selectedHours = nil
	s.hasSelection = false
}

func (s *Session) resolveText(ctx context.Context, query string) ([]geo.ResolvedLocation, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.resolver.Resolve(ctx, query)
	})
	if err != nil {
		return nil, wrapGeocoding(err)
	}
	return res.([]geo.ResolvedLocation), nil
}

func (s *Session) resolveStructured(ctx context.Context, q geo.StructuredQuery) ([]geo.ResolvedLocation, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.resolver.ResolveStructured(ctx, q)
	})
	if err != nil {
		return nil, wrapGeocoding(err)
	}
	return res.([]geo.ResolvedLocation), nil
}

func (s *Session) resolveCoordinate(ctx context.Context, c geo.Coordinate) (geo.ResolvedLocation, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.resolver.ResolveCoordinate(ctx, c)
	})
	if err != nil {
		return geo.ResolvedLocation{}, wrapGeocoding(err)
	}
	return res.(geo.ResolvedLocation), nil
}

func wrapGeocoding(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit open: %v", ErrGeocodingFailure, err)
	}
	return fmt.Errorf("%w: %v", ErrGeocodingFailure, err)
}

// needsRefinement judges whether a single candidate is complete enough to
// use directly. Registry entries always carry at least a country code, so
// in practice this routes only best-effort synthesized candidates through
// the refinement dialog.
func needsRefinement(loc geo.ResolvedLocation) bool {
	if loc.Synthesized {
		return true
	}
	return loc.AdminRegion == "" && loc.CountryCode == ""
}
