package geo

// registryEntry is one known place in the built-in registry.
// Approximate entries cover a wide metro area and get a looser
// reverse-lookup tolerance than exact ones.
type registryEntry struct {
	Name        string
	AdminRegion string
	CountryCode string
	Lat         float64
	Lon         float64
	Timezone    string
	Approximate bool
}

// DefaultTimezone is substituted whenever no timezone can be determined
// for a location. A ResolvedLocation never carries an empty timezone.
const DefaultTimezone = "Etc/UTC"

// defaultRegistry is the built-in place registry. Several entries share a
// name on purpose (e.g. London) so that plain-text lookups can produce
// multiple candidates for disambiguation.
var defaultRegistry = []registryEntry{
	{Name: "London", AdminRegion: "England", CountryCode: "GB", Lat: 51.5074, Lon: -0.1278, Timezone: "Europe/London"},
	{Name: "London", AdminRegion: "Ontario", CountryCode: "CA", Lat: 42.9849, Lon: -81.2453, Timezone: "America/Toronto"},
	{Name: "London", AdminRegion: "Kentucky", CountryCode: "US", Lat: 37.1289, Lon: -84.0833, Timezone: "America/New_York"},
	{Name: "Paris", AdminRegion: "Île-de-France", CountryCode: "FR", Lat: 48.8566, Lon: 2.3522, Timezone: "Europe/Paris"},
	{Name: "New York", AdminRegion: "New York", CountryCode: "US", Lat: 40.7128, Lon: -74.0060, Timezone: "America/New_York", Approximate: true},
	{Name: "Los Angeles", AdminRegion: "California", CountryCode: "US", Lat: 34.0522, Lon: -118.2437, Timezone: "America/Los_Angeles", Approximate: true},
	{Name: "Chicago", AdminRegion: "Illinois", CountryCode: "US", Lat: 41.8781, Lon: -87.6298, Timezone: "America/Chicago"},
	{Name: "Toronto", AdminRegion: "Ontario", CountryCode: "CA", Lat: 43.6532, Lon: -79.3832, Timezone: "America/Toronto"},
	{Name: "Vancouver", AdminRegion: "British Columbia", CountryCode: "CA", Lat: 49.2827, Lon: -123.1207, Timezone: "America/Vancouver"},
	{Name: "Berlin", AdminRegion: "Berlin", CountryCode: "DE", Lat: 52.5200, Lon: 13.4050, Timezone: "Europe/Berlin"},
	{Name: "Madrid", AdminRegion: "Comunidad de Madrid", CountryCode: "ES", Lat: 40.4168, Lon: -3.7038, Timezone: "Europe/Madrid"},
	{Name: "Rome", AdminRegion: "Lazio", CountryCode: "IT", Lat: 41.9028, Lon: 12.4964, Timezone: "Europe/Rome"},
	{Name: "Helsinki", AdminRegion: "Uusimaa", CountryCode: "FI", Lat: 60.1699, Lon: 24.9384, Timezone: "Europe/Helsinki"},
	{Name: "Tokyo", AdminRegion: "Tokyo", CountryCode: "JP", Lat: 35.6762, Lon: 139.6503, Timezone: "Asia/Tokyo", Approximate: true},
	{Name: "Singapore", AdminRegion: "", CountryCode: "SG", Lat: 1.3521, Lon: 103.8198, Timezone: "Asia/Singapore"},
	{Name: "Mumbai", AdminRegion: "Maharashtra", CountryCode: "IN", Lat: 19.0760, Lon: 72.8777, Timezone: "Asia/Kolkata", Approximate: true},
	{Name: "Sydney", AdminRegion: "New South Wales", CountryCode: "AU", Lat: -33.8688, Lon: 151.2093, Timezone: "Australia/Sydney", Approximate: true},
	{Name: "Auckland", AdminRegion: "Auckland", CountryCode: "NZ", Lat: -36.8485, Lon: 174.7633, Timezone: "Pacific/Auckland"},
	{Name: "São Paulo", AdminRegion: "São Paulo", CountryCode: "BR", Lat: -23.5505, Lon: -46.6333, Timezone: "America/Sao_Paulo", Approximate: true},
	{Name: "Cairo", AdminRegion: "Cairo", CountryCode: "EG", Lat: 30.0444, Lon: 31.2357, Timezone: "Africa/Cairo"},
	{Name: "Nairobi", AdminRegion: "Nairobi", CountryCode: "KE", Lat: -1.2921, Lon: 36.8219, Timezone: "Africa/Nairobi"},
	{Name: "Springfield", AdminRegion: "Illinois", CountryCode: "US", Lat: 39.7817, Lon: -89.6501, Timezone: "America/Chicago"},
	{Name: "Springfield", AdminRegion: "Massachusetts", CountryCode: "US", Lat: 42.1015, Lon: -72.5898, Timezone: "America/New_York"},
}
