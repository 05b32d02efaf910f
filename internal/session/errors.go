package session

import "errors"

var (
	// ErrLocationNotFound: geocoding returned zero candidates.
	ErrLocationNotFound = errors.New("location not found")

	// ErrGeocodingFailure: the lookup itself failed (cancelled, timed out,
	// or the circuit breaker is open). Retryable by re-submitting.
	ErrGeocodingFailure = errors.New("geocoding failure")

	// ErrSynthesisFailure: weather generation failed; the active dataset
	// is cleared.
	ErrSynthesisFailure = errors.New("weather synthesis failure")

	// ErrHourlyWindow: no series or timezone available for day selection.
	// Surfaced per-day; the main dataset is untouched.
	ErrHourlyWindow = errors.New("hourly window unavailable")

	// ErrInvalidIntent: the intent is not legal in the current state.
	ErrInvalidIntent = errors.New("intent not valid in current state")
)
