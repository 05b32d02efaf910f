package weather

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCivilDateOfRespectsTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 22:00 UTC on the 11th is already the 12th in Tokyo.
	instant := time.Date(2025, time.June, 11, 22, 0, 0, 0, time.UTC)

	utcDate := CivilDateOf(instant, time.UTC)
	tokyoDate := CivilDateOf(instant, tokyo)

	if utcDate != (CivilDate{2025, time.June, 11}) {
		t.Errorf("unexpected UTC date %v", utcDate)
	}
	if tokyoDate != (CivilDate{2025, time.June, 12}) {
		t.Errorf("unexpected Tokyo date %v", tokyoDate)
	}
	if utcDate.Equal(tokyoDate) {
		t.Error("dates on opposite sides of midnight should differ")
	}
}

func TestCivilDateAddDaysNormalizes(t *testing.T) {
	tests := []struct {
		start CivilDate
		n     int
		want  CivilDate
	}{
		{CivilDate{2025, time.January, 30}, 3, CivilDate{2025, time.February, 2}},
		{CivilDate{2025, time.December, 30}, 5, CivilDate{2026, time.January, 4}},
		{CivilDate{2024, time.February, 28}, 1, CivilDate{2024, time.February, 29}},
		{CivilDate{2025, time.June, 1}, 0, CivilDate{2025, time.June, 1}},
	}
	for _, tt := range tests {
		if got := tt.start.AddDays(tt.n); got != tt.want {
			t.Errorf("%v + %d days: expected %v, got %v", tt.start, tt.n, tt.want, got)
		}
	}
}

func TestCivilDateOrdering(t *testing.T) {
	a := CivilDate{2025, time.June, 11}
	b := CivilDate{2025, time.June, 12}
	c := CivilDate{2025, time.July, 1}

	if !a.Before(b) || !b.Before(c) {
		t.Error("expected a < b < c")
	}
	if b.Before(a) || a.Before(a) {
		t.Error("Before should be strict")
	}
}

func TestCivilDateJSONRoundTrip(t *testing.T) {
	d := CivilDate{2025, time.June, 5}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2025-06-05"` {
		t.Errorf("unexpected encoding %s", data)
	}

	var back CivilDate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip changed date: %v -> %v", d, back)
	}

	if _, err := ParseCivilDate("06/05/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
