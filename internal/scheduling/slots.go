package scheduling

import (
	"time"
)

const (
	// SlotInterval is the spacing of the clinical day's slot grid.
	SlotInterval = 15 * time.Minute

	// DateLayout is the wire format for calendar days.
	DateLayout = "2006-01-02"

	layout12 = "03:04 PM" // slot strings shown to patients
	layout24 = "15:04"    // stored appointment times
)

// Working-day window. Slots run from DayStart to DayEnd inclusive, minus the
// lunch break.
var (
	DayStart = Clock(9, 0)
	DayEnd   = Clock(17, 0)

	lunchStart = Clock(13, 0)
	lunchEnd   = Clock(14, 0)
)

// Clock builds a time-of-day value on a fixed reference day, so slot math
// never depends on the calendar date.
func Clock(hour, min int) time.Time {
	return time.Date(2000, time.January, 1, hour, min, 0, 0, time.UTC)
}

// SlotGrid returns the ordered candidate slots from start to end inclusive,
// stepping by interval. Slots falling inside the lunch window [13:00, 14:00)
// are dropped. The output is deterministic and independent of stored data;
// start after end yields an empty grid.
func SlotGrid(start, end time.Time, interval time.Duration) []string {
	slots := []string{}
	for cur := start; !cur.After(end); cur = cur.Add(interval) {
		if !cur.Before(lunchStart) && cur.Before(lunchEnd) {
			continue
		}
		slots = append(slots, cur.Format(layout12))
	}
	return slots
}

// DaySlots returns the full candidate grid for one clinical day.
func DaySlots() []string {
	return SlotGrid(DayStart, DayEnd, SlotInterval)
}

// ParseClock converts a patient-facing 12-hour slot string into the stored
// 24-hour "15:04" form. Returns ErrMalformedTime on any other shape.
func ParseClock(s string) (string, error) {
	t, err := time.Parse(layout12, s)
	if err != nil {
		return "", ErrMalformedTime
	}
	return t.Format(layout24), nil
}

// FormatClock converts a stored 24-hour time back into the 12-hour slot form.
func FormatClock(hm string) string {
	t, err := time.Parse(layout24, hm)
	if err != nil {
		return hm
	}
	return t.Format(layout12)
}

// ParseDate validates a calendar-day string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrMalformedDate
	}
	return d, nil
}

// FilterPast drops every slot at or before now's time-of-day, leaving only
// strictly-future slots. Callers apply it only when the requested date is the
// current date.
func FilterPast(slots []string, now time.Time) []string {
	cutoff := now.Format(layout24)
	kept := []string{}
	for _, slot := range slots {
		hm, err := ParseClock(slot)
		if err != nil {
			continue
		}
		if hm > cutoff {
			kept = append(kept, slot)
		}
	}
	return kept
}

// FilterBooked drops slots whose time matches an already-booked appointment
// time (stored 24-hour values).
func FilterBooked(slots []string, booked []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, hm := range booked {
		taken[hm] = true
	}
	kept := []string{}
	for _, slot := range slots {
		hm, err := ParseClock(slot)
		if err != nil {
			continue
		}
		if !taken[hm] {
			kept = append(kept, slot)
		}
	}
	return kept
}
