package session

// State is the resolution pipeline's session state.
type State string

const (
	// StateIdle: no active location.
	StateIdle State = "idle"
	// StateResolving: a geocoding or synthesis operation is outstanding.
	StateResolving State = "resolving"
	// StateNotFound: geocoding returned zero candidates.
	StateNotFound State = "not_found"
	// StateDisambiguating: multiple candidates await a user pick.
	StateDisambiguating State = "disambiguating"
	// StateRefining: one incomplete candidate awaits extra detail or skip.
	StateRefining State = "refining"
	// StateReady: a weather bundle is active.
	StateReady State = "ready"
)
