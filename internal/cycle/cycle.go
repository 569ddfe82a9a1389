package cycle

import "time"

// Cycle identifies one round of a city's lottery: an ISO-8601 (year, week)
// pair. Weeks start on Monday; the first week of a year is the one
// containing the first Thursday.
type Cycle struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// Clock returns the current time. Injecting a fake Clock lets tests place
// operations on either side of a cycle boundary.
type Clock func() time.Time

// At maps a wall-clock instant to its cycle. Instants are normalized to UTC
// so the boundary does not depend on the server's local zone.
func At(t time.Time) Cycle {
	year, week := t.UTC().ISOWeek()
	return Cycle{Year: year, Week: week}
}
