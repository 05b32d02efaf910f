package geo

import "fmt"

// Coordinate is an immutable geographic point.
// Latitude is valid in [-90, 90], longitude in [-180, 180].
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is within range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// ResolvedLocation is one concrete geographic answer to a place query.
// MatchedName preserves what the lookup actually matched and may differ
// from DisplayName in casing or specificity. Timezone is always a valid
// IANA id; DefaultTimezone is substituted when none can be determined.
type ResolvedLocation struct {
	DisplayName string     `json:"displayName"`
	MatchedName string     `json:"matchedName"`
	AdminRegion string     `json:"adminRegion,omitempty"`
	CountryCode string     `json:"countryCode,omitempty"`
	Coordinate  Coordinate `json:"coordinate"`
	Timezone    string     `json:"timezone"`

	// Synthesized marks a best-effort candidate that did not come from the
	// place registry. Such candidates are considered incomplete and are
	// offered for refinement by the session layer.
	Synthesized bool `json:"synthesized,omitempty"`
}

// StructuredQuery is a city query optionally narrowed by state and country.
type StructuredQuery struct {
	City    string
	State   string
	Country string
}
