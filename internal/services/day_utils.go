package services

import "time"

const DayLayout = "2006-01-02"

// DayStartUTC truncates an instant to the start of its UTC calendar day.
// Every derived-time computation in the app works on UTC instants; naive
// local timestamps are never stored or parsed.
func DayStartUTC(value time.Time) time.Time {
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DayRangeUTC(value time.Time) (time.Time, time.Time) {
	start := DayStartUTC(value)
	return start, start.AddDate(0, 0, 1)
}

func ParseDay(raw string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, raw, time.UTC)
}

func FormatDay(value time.Time) string {
	return value.UTC().Format(DayLayout)
}
