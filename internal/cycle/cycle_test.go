package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAtISOWeekNumbering(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want Cycle
	}{
		{"midyear monday", time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), Cycle{2026, 36}},
		{"sunday before", time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC), Cycle{2026, 35}},
		{"monday just after midnight", time.Date(2026, 8, 31, 0, 0, 1, 0, time.UTC), Cycle{2026, 36}},
		// The week containing the first Thursday of January belongs to the new year
		{"dec 29 2025 opens 2026-W01", time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), Cycle{2026, 1}},
		{"dec 28 2025 closes 2025-W52", time.Date(2025, 12, 28, 23, 59, 59, 0, time.UTC), Cycle{2025, 52}},
		{"jan 1 2021 still in 2020-W53", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Cycle{2020, 53}},
		{"dec 30 2024 opens 2025-W01", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), Cycle{2025, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, At(tc.t))
		})
	}
}

func TestAtNormalizesToUTC(t *testing.T) {
	// Monday 00:00:01 in UTC+2 is still Sunday in UTC
	local := time.Date(2026, 8, 31, 0, 0, 1, 0, time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, Cycle{2026, 35}, At(local))
}
