package weather

import (
	"time"

	"github.com/vincentspereira/weatherdeck/internal/geo"
)

// Condition is a textual sky-condition label drawn from a fixed set.
type Condition string

const (
	ConditionSunny        Condition = "Sunny"
	ConditionClear        Condition = "Clear"
	ConditionPartlyCloudy Condition = "Partly Cloudy"
	ConditionCloudy       Condition = "Cloudy"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionLightRain    Condition = "Light Rain"
	ConditionRain         Condition = "Rain"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionFoggy        Condition = "Foggy"
	ConditionWindy        Condition = "Windy"
)

// CurrentConditions is the present-moment view for the active location.
type CurrentConditions struct {
	TemperatureC         float64   `json:"temperatureC"`
	FeelsLikeC           float64   `json:"feelsLikeC"`
	Condition            Condition `json:"condition"`
	HumidityPct          int       `json:"humidityPercent"`
	WindSpeedMph         float64   `json:"windSpeedMph"`
	PrecipProbabilityPct int       `json:"precipProbabilityPercent"`
	Timezone             string    `json:"timezone"`
}

// DailySummary is one day of the forecast. The date is local to the
// location's timezone; low is strictly below high by construction.
type DailySummary struct {
	Date                 CivilDate `json:"date"`
	HighTempC            float64   `json:"highTempC"`
	LowTempC             float64   `json:"lowTempC"`
	Condition            Condition `json:"condition"`
	PrecipProbabilityPct int       `json:"precipProbabilityPercent"`
	Sunrise              string    `json:"sunrise"` // "HH:mm" local
	Sunset               string    `json:"sunset"`  // "HH:mm" local
}

// HourlyRecord is one hour of the forecast. Instant is absolute; the label
// is the hour as observed in the location's timezone.
type HourlyRecord struct {
	Instant              time.Time `json:"instant"`
	LocalHourLabel       string    `json:"localHourLabel"` // "HH:00"
	TemperatureC         float64   `json:"temperatureC"`
	FeelsLikeC           float64   `json:"feelsLikeC"`
	Condition            Condition `json:"condition"`
	PrecipProbabilityPct int       `json:"precipProbabilityPercent"`
}

// Bundle is the full generated dataset for one resolved location. It is
// created in one synthesis pass and replaced wholesale by the next
// resolution; the hourly series is only ever filtered at read time.
type Bundle struct {
	Location    geo.ResolvedLocation `json:"location"`
	Current     CurrentConditions    `json:"current"`
	Daily       []DailySummary       `json:"daily"`
	Hourly      []HourlyRecord       `json:"hourly"`
	GeneratedAt time.Time            `json:"generatedAt"`
}
