package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthID(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2024-01", true},
		{"2099-12", true},
		{"2024-00", false},
		{"2024-13", false},
		{"2024-1", false},
		{"24-01", false},
		{"2024-01.json", false},
		{"../etc", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseMonthID(tt.input)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, MonthID(tt.input), id)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidMonthID)
			assert.False(t, IsMonthID(tt.input))
		})
	}
}

func TestMonthIDOrderingIsChronological(t *testing.T) {
	assert.True(t, MonthID("2023-12").Before("2024-01"))
	assert.True(t, MonthID("2024-09").Before("2024-10"))
	assert.False(t, MonthID("2024-10").Before("2024-10"))
	assert.False(t, MonthID("2025-01").Before("2024-12"))
}

func TestMonthIDOf(t *testing.T) {
	ts := time.Date(2024, 3, 31, 23, 30, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, MonthID("2024-03"), MonthIDOf(ts))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, MonthID("2024-01").DaysInMonth())
	assert.Equal(t, 29, MonthID("2024-02").DaysInMonth())
	assert.Equal(t, 28, MonthID("2023-02").DaysInMonth())
	assert.Equal(t, 30, MonthID("2024-04").DaysInMonth())
}
