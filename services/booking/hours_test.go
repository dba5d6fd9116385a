package booking

import (
	"testing"
	"time"

	"evcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is 2026-03-02, a Monday, in the business timezone.
func monday(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, businessLocation)
}

func TestParseMinutes(t *testing.T) {
	assert.Equal(t, 9*60, parseMinutes("09:00"))
	assert.Equal(t, 17*60+30, parseMinutes("17:30"))

	// Malformed values parse to zero rather than erroring.
	assert.Equal(t, 0, parseMinutes(""))
	assert.Equal(t, 0, parseMinutes("nine"))
	assert.Equal(t, 0, parseMinutes("09"))
	assert.Equal(t, 0, parseMinutes("ab:cd"))
}

func TestIsCurrentlyOpenAt(t *testing.T) {
	hours := models.OperatingHours{
		"monday": {Open: "08:00", Close: "17:00", IsOpen: true},
	}

	assert.True(t, IsCurrentlyOpenAt(hours, monday(8, 0)))
	assert.True(t, IsCurrentlyOpenAt(hours, monday(12, 30)))
	assert.False(t, IsCurrentlyOpenAt(hours, monday(17, 0)), "close minute is exclusive")
	assert.False(t, IsCurrentlyOpenAt(hours, monday(7, 59)))
}

func TestIsCurrentlyOpenAtOvernightWindow(t *testing.T) {
	hours := models.OperatingHours{
		"monday": {Open: "23:00", Close: "02:00", IsOpen: true},
	}

	assert.True(t, IsCurrentlyOpenAt(hours, monday(23, 30)))
	assert.True(t, IsCurrentlyOpenAt(hours, monday(1, 30)), "early morning falls inside the wrapped window")
	assert.False(t, IsCurrentlyOpenAt(hours, monday(15, 0)))
	assert.False(t, IsCurrentlyOpenAt(hours, monday(2, 0)))
}

func TestIsCurrentlyOpenAtClosedOrMissingDay(t *testing.T) {
	closed := models.OperatingHours{
		"monday": {Open: "08:00", Close: "17:00", IsOpen: false},
	}
	assert.False(t, IsCurrentlyOpenAt(closed, monday(10, 0)))

	assert.False(t, IsCurrentlyOpenAt(models.OperatingHours{}, monday(10, 0)))
}

func TestNextOpeningTimeAt(t *testing.T) {
	hours := models.OperatingHours{
		"monday":    {Open: "08:00", Close: "17:00", IsOpen: true},
		"wednesday": {Open: "09:30", Close: "18:00", IsOpen: true},
	}

	// Before today's opening: "Today at HH:MM".
	next, ok := NextOpeningTimeAt(hours, monday(6, 0))
	require.True(t, ok)
	assert.Equal(t, "Today at 08:00", next)

	// After today's opening has passed, the scan lands on Wednesday.
	next, ok = NextOpeningTimeAt(hours, monday(18, 0))
	require.True(t, ok)
	assert.Equal(t, "Wednesday at 09:30", next)
}

func TestNextOpeningTimeAtNoOpenDay(t *testing.T) {
	hours := models.OperatingHours{
		"monday": {Open: "08:00", Close: "17:00", IsOpen: false},
	}
	_, ok := NextOpeningTimeAt(hours, monday(6, 0))
	assert.False(t, ok)
}

func TestIsTimeSlotPassedAt(t *testing.T) {
	slot := models.TimeSlot{StartTime: "09:00", EndTime: "10:00"}
	now := monday(9, 0)

	assert.True(t, IsTimeSlotPassedAt(slot, "2026-03-02", now), "a slot starting right now counts as passed")
	assert.True(t, IsTimeSlotPassedAt(models.TimeSlot{StartTime: "08:00"}, "2026-03-02", now))
	assert.False(t, IsTimeSlotPassedAt(models.TimeSlot{StartTime: "09:01"}, "2026-03-02", now))

	// Only today can pass.
	assert.False(t, IsTimeSlotPassedAt(slot, "2026-03-03", now))
	assert.False(t, IsTimeSlotPassedAt(slot, "2026-03-01", now))
}

func TestIsDateBookable(t *testing.T) {
	hours := models.OperatingHours{
		"monday": {Open: "08:00", Close: "17:00", IsOpen: true},
		"sunday": {Open: "08:00", Close: "12:00", IsOpen: false},
	}

	assert.True(t, IsDateBookable(hours, "2026-03-02"))
	assert.False(t, IsDateBookable(hours, "2026-03-08"), "sunday is marked closed")
	assert.False(t, IsDateBookable(hours, "2026-03-03"), "tuesday has no entry")
	assert.False(t, IsDateBookable(hours, "not-a-date"))
}
