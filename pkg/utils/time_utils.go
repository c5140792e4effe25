package utils

import "time"

// DaysBetween calculates the number of whole days from 'from' to 'to'.
// Returns a negative value when 'from' is after 'to'.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// CalculateElapsedDays calculates the number of days elapsed since a given time
func CalculateElapsedDays(since time.Time) int {
	return int(time.Since(since).Hours() / 24)
}
