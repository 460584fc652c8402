package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeToMinutes("00:00"))
	assert.Equal(t, 7*60+30, TimeToMinutes("07:30"))
	assert.Equal(t, 23*60+59, TimeToMinutes("23:59"))
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("7:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", got)

	got, err = NormalizeClock("19:00")
	require.NoError(t, err)
	assert.Equal(t, "19:00", got)

	_, err = NormalizeClock("25:00")
	assert.Error(t, err)
	_, err = NormalizeClock("noon")
	assert.Error(t, err)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2026-10-18", DayKey(time.Date(2026, 10, 18, 23, 10, 0, 0, time.UTC)))
}
