package weather

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/vincentspereira/weatherdeck/internal/geo"
	"github.com/vincentspereira/weatherdeck/internal/util"
)

// Session base temperature range, °C. Representative of a temperate
// climate; every other temperature in a bundle derives from this value.
const (
	baseTempMin = 8.0
	baseTempMax = 24.0
)

// Synthesizer deterministically-randomly generates weather bundles. All
// wall-clock anchoring goes through the injected Clock and all randomness
// through the injected source, so tests can pin both.
type Synthesizer struct {
	clock       util.Clock
	horizonDays int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthesizer creates a Synthesizer generating horizonDays of daily
// summaries and horizonDays*24 hourly records per bundle.
func NewSynthesizer(clock util.Clock, rng *rand.Rand, horizonDays int) *Synthesizer {
	if horizonDays <= 0 {
		horizonDays = 9
	}
	return &Synthesizer{
		clock:       clock,
		horizonDays: horizonDays,
		rng:         rng,
	}
}

// HorizonDays reports the configured forecast horizon.
func (s *Synthesizer) HorizonDays() int {
	return s.horizonDays
}

// Synthesize generates a full bundle for the given point, anchored to its
// timezone. Daily index 0 is "today" as observed there; the hourly series
// starts at the top of the current local hour and advances in strict
// one-hour steps for horizonDays*24 entries.
func (s *Synthesizer) Synthesize(coord geo.Coordinate, timezone string) (Bundle, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Bundle{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().In(loc)
	base := baseTempMin + s.rng.Float64()*(baseTempMax-baseTempMin)

	current := CurrentConditions{
		TemperatureC:         round1(base + s.jitter(3)),
		FeelsLikeC:           round1(base + s.jitter(5)),
		Condition:            randomCondition(s.rng),
		HumidityPct:          30 + s.rng.Intn(66),
		WindSpeedMph:         round1(1 + s.rng.Float64()*23),
		PrecipProbabilityPct: s.rng.Intn(101),
		Timezone:             timezone,
	}

	today := CivilDateOf(now, loc)
	daily := make([]DailySummary, s.horizonDays)
	byDate := make(map[CivilDate]DailySummary, s.horizonDays)
	for i := range daily {
		d := s.synthesizeDay(today.AddDays(i), base)
		daily[i] = d
		byDate[d.Date] = d
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, loc)
	hourly := make([]HourlyRecord, s.horizonDays*24)
	for i := range hourly {
		instant := start.Add(time.Duration(i) * time.Hour)
		lt := instant.In(loc)

		var temp float64
		if day, ok := byDate[CivilDateOf(lt, loc)]; ok {
			mean := (day.HighTempC + day.LowTempC) / 2
			amp := (day.HighTempC - day.LowTempC) / 2
			temp = mean + amp*diurnal(lt.Hour()) + s.jitter(0.6)
		} else {
			// Tail hours past the last daily entry fall back to a global
			// curve anchored to the session base.
			temp = base + 4*diurnal(lt.Hour()) + s.jitter(0.6)
		}

		hourly[i] = HourlyRecord{
			Instant:              instant,
			LocalHourLabel:       fmt.Sprintf("%02d:00", lt.Hour()),
			TemperatureC:         round1(temp),
			FeelsLikeC:           round1(temp + s.jitter(2)),
			Condition:            randomCondition(s.rng),
			PrecipProbabilityPct: s.rng.Intn(101),
		}
	}

	return Bundle{
		Current:     current,
		Daily:       daily,
		Hourly:      hourly,
		GeneratedAt: now,
	}, nil
}

// synthesizeDay derives one daily summary from the session base. The clamp
// guarantees low < high strictly even if the spreads are ever retuned.
func (s *Synthesizer) synthesizeDay(date CivilDate, base float64) DailySummary {
	dayBase := base + s.jitter(4)
	high := dayBase + 2 + s.rng.Float64()*4
	low := high - (5 + s.rng.Float64()*7)
	if low >= high {
		low = high - 1
	}

	return DailySummary{
		Date:                 date,
		HighTempC:            round1(high),
		LowTempC:             round1(low),
		Condition:            randomCondition(s.rng),
		PrecipProbabilityPct: s.rng.Intn(101),
		Sunrise:              clockLabel(345 + s.rng.Intn(91)),   // 05:45 .. 07:15
		Sunset:               clockLabel(1050 + s.rng.Intn(181)), // 17:30 .. 20:30
	}
}

// jitter returns a uniform value in [-max, max]. Caller holds s.mu.
func (s *Synthesizer) jitter(max float64) float64 {
	return (s.rng.Float64()*2 - 1) * max
}

// diurnal is the smooth day/night oscillation, +1 at the 15:00 peak and -1
// at the 03:00 trough.
func diurnal(hour int) float64 {
	return math.Cos(2 * math.Pi * float64(hour-15) / 24)
}

// clockLabel formats minutes-since-midnight as "HH:mm".
func clockLabel(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
