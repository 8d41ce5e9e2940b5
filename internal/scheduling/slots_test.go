package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySlots(t *testing.T) {
	slots := DaySlots()

	// 09:00 through 17:00 every 15 minutes is 33 slots; the lunch hour
	// removes four of them.
	require.Len(t, slots, 29)
	assert.Equal(t, "09:00 AM", slots[0])
	assert.Equal(t, "05:00 PM", slots[len(slots)-1])

	for _, slot := range slots {
		hm, err := ParseClock(slot)
		require.NoError(t, err)
		assert.False(t, hm >= "13:00" && hm < "14:00", "lunch slot leaked: %s", slot)
	}

	assert.Contains(t, slots, "12:45 PM")
	assert.Contains(t, slots, "02:00 PM")
	assert.NotContains(t, slots, "01:00 PM")
	assert.NotContains(t, slots, "01:45 PM")
}

func TestSlotGrid_InclusiveEnd(t *testing.T) {
	slots := SlotGrid(Clock(9, 0), Clock(9, 30), 15*time.Minute)
	assert.Equal(t, []string{"09:00 AM", "09:15 AM", "09:30 AM"}, slots)
}

func TestSlotGrid_StartAfterEnd(t *testing.T) {
	assert.Empty(t, SlotGrid(Clock(17, 0), Clock(9, 0), 15*time.Minute))
}

func TestParseClock(t *testing.T) {
	hm, err := ParseClock("09:15 AM")
	require.NoError(t, err)
	assert.Equal(t, "09:15", hm)

	hm, err = ParseClock("02:30 PM")
	require.NoError(t, err)
	assert.Equal(t, "14:30", hm)

	hm, err = ParseClock("12:00 PM")
	require.NoError(t, err)
	assert.Equal(t, "12:00", hm)

	for _, bad := range []string{"", "9:15", "14:30", "09:15", "garbage", "25:00 PM"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrMalformedTime, "input %q", bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "02:30 PM", FormatClock("14:30"))
	assert.Equal(t, "09:00 AM", FormatClock("09:00"))

	// Unparseable stored values pass through untouched.
	assert.Equal(t, "bogus", FormatClock("bogus"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())

	for _, bad := range []string{"", "10-03-2026", "2026/03/10", "2026-13-01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrMalformedDate, "input %q", bad)
	}
}

func TestFilterPast(t *testing.T) {
	slots := []string{"09:00 AM", "11:00 AM", "11:15 AM", "02:00 PM"}

	now := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	kept := FilterPast(slots, now)

	// A slot exactly at the current minute is gone; only strictly later
	// slots survive.
	assert.Equal(t, []string{"11:15 AM", "02:00 PM"}, kept)

	endOfDay := time.Date(2026, time.March, 10, 17, 1, 0, 0, time.UTC)
	assert.Empty(t, FilterPast(slots, endOfDay))
}

func TestFilterBooked(t *testing.T) {
	slots := []string{"09:00 AM", "09:15 AM", "02:30 PM"}

	kept := FilterBooked(slots, []string{"09:15", "14:30"})
	assert.Equal(t, []string{"09:00 AM"}, kept)

	assert.Equal(t, slots, FilterBooked(slots, nil))
}
