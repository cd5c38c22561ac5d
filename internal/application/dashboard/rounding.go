package dashboard

import "math"

// hoursFromMinutes converts minutes to hours rounded to one decimal place.
// round(minutes/6)/10 is equivalent to round(minutes/60*10)/10 and avoids
// an intermediate division.
func hoursFromMinutes(minutes int) float64 {
	return math.Round(float64(minutes)/6) / 10
}

// percentage returns part/total*100 rounded to one decimal, 0 when total is 0
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// progress returns hours/target*100 rounded to one decimal, 0 when target is 0
func progress(hours, target float64) float64 {
	if target == 0 {
		return 0
	}
	return math.Round(hours/target*1000) / 10
}

// delta returns the period-over-period percentage change rounded to one
// decimal. Defined as 0 when the previous period is empty.
func delta(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 10
}

// round1 rounds to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
