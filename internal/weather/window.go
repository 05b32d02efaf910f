package weather

import "time"

// SelectHoursForDay returns the records of series belonging to target as
// observed in loc. When target is "today" there (judged against now,
// converted into loc), only hours strictly after now's local hour are
// kept, so an in-progress hour is already excluded. An empty result is a
// valid outcome, e.g. selecting today during its last hour.
//
// The function is pure: it never mutates series and is safe to call
// repeatedly on the same cached slice.
func SelectHoursForDay(series []HourlyRecord, loc *time.Location, target CivilDate, now time.Time) []HourlyRecord {
	isToday := CivilDateOf(now, loc).Equal(target)
	currentHour := now.In(loc).Hour()

	out := make([]HourlyRecord, 0, 24)
	for _, rec := range series {
		lt := rec.Instant.In(loc)
		if !CivilDateOf(lt, loc).Equal(target) {
			continue
		}
		if isToday && lt.Hour() <= currentHour {
			continue
		}
		out = append(out, rec)
	}
	return out
}
