package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateRange(t *testing.T) {
	cases := []struct {
		name             string
		date, start, end string
		wantStart        string
		wantEnd          string
	}{
		{"single date covers that day", "2026-08-31", "", "", "2026-08-31", "2026-08-31"},
		{"date wins over range", "2026-08-31", "2026-08-01", "2026-08-15", "2026-08-31", "2026-08-31"},
		{"start only", "", "2026-08-01", "", "2026-08-01", "2026-08-01"},
		{"end only", "", "", "2026-08-31", "2026-08-31", "2026-08-31"},
		{"full range", "", "2026-08-01", "2026-08-31", "2026-08-01", "2026-08-31"},
		{"empty means everything", "", "", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, e := DateRange(tc.date, tc.start, tc.end)
			assert.Equal(t, tc.wantStart, s)
			assert.Equal(t, tc.wantEnd, e)
		})
	}
}
