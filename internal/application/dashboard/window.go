package dashboard

import "time"

// Window is a half-open time range [Start, End) used for aggregation
type Window struct {
	Start time.Time
	End   time.Time
}

// startOfDay returns midnight of t's calendar day
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday midnight of t's week
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// currentWeek returns the Monday-to-Sunday window containing now
func currentWeek(now time.Time) Window {
	start := startOfWeek(now)
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// previousWeek returns the full week before the current one
func previousWeek(now time.Time) Window {
	start := startOfWeek(now).AddDate(0, 0, -7)
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// elapsedMonth returns the window from the 1st of the month through today
func elapsedMonth(now time.Time) Window {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: startOfDay(now).AddDate(0, 0, 1)}
}

// currentMonth returns the full calendar month containing now
func currentMonth(now time.Time) Window {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// previousMonth returns the full calendar month before the current one
func previousMonth(now time.Time) Window {
	y, m, _ := now.Date()
	end := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: end.AddDate(0, -1, 0), End: end}
}

// trendWindow returns the window covering the days most recent calendar
// days ending today, inclusive
func trendWindow(now time.Time, days int) Window {
	end := startOfDay(now).AddDate(0, 0, 1)
	return Window{Start: end.AddDate(0, 0, -days), End: end}
}
