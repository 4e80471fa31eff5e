package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicYear(t *testing.T) {
	cases := []struct {
		now  time.Time
		name string
	}{
		{time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC), "2024-2025"},
		{time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "2025-2026"},
	}
	for _, tc := range cases {
		name, from, to := AcademicYear(tc.now)
		assert.Equal(t, tc.name, name)
		assert.Equal(t, time.April, from.Month())
		assert.Equal(t, 1, from.Day())
		assert.Equal(t, time.March, to.Month())
		assert.Equal(t, 31, to.Day())
		assert.Equal(t, from.Year()+1, to.Year())
	}
}
