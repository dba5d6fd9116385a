package booking

import (
	"fmt"
	"testing"

	"evcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(start, end string, technicians ...string) models.TimeSlot {
	return models.TimeSlot{StartTime: start, EndTime: end, AvailableTechnicians: technicians}
}

func TestFilterByPeriod(t *testing.T) {
	slots := []models.TimeSlot{
		slotAt("06:00", "07:00", "t1"),
		slotAt("11:30", "12:30", "t1"),
		slotAt("12:00", "13:00", "t1"),
		slotAt("16:59", "18:00", "t1"),
		slotAt("17:00", "18:00", "t1"),
		slotAt("21:30", "22:30", "t1"),
	}

	morning := FilterByPeriod(slots, PeriodMorning)
	require.Len(t, morning, 2)
	assert.Equal(t, "06:00", morning[0].StartTime)
	assert.Equal(t, "11:30", morning[1].StartTime)

	afternoon := FilterByPeriod(slots, PeriodAfternoon)
	require.Len(t, afternoon, 2)
	assert.Equal(t, "12:00", afternoon[0].StartTime)
	assert.Equal(t, "16:59", afternoon[1].StartTime)

	evening := FilterByPeriod(slots, PeriodEvening)
	require.Len(t, evening, 2)
	assert.Equal(t, "17:00", evening[0].StartTime)

	assert.Len(t, FilterByPeriod(slots, PeriodAll), len(slots))
	assert.Len(t, FilterByPeriod(slots, Period("bogus")), len(slots))
}

func TestIsSelectableAt(t *testing.T) {
	now := monday(9, 0)

	assert.True(t, IsSelectableAt(slotAt("10:00", "11:00", "t1"), "2026-03-02", now))
	assert.False(t, IsSelectableAt(slotAt("10:00", "11:00"), "2026-03-02", now), "no technicians")
	assert.False(t, IsSelectableAt(slotAt("08:00", "09:00", "t1"), "2026-03-02", now), "already passed")

	// Passed slots on other dates stay selectable.
	assert.True(t, IsSelectableAt(slotAt("08:00", "09:00", "t1"), "2026-03-03", now))
}

func TestPageSlots(t *testing.T) {
	var slots []models.TimeSlot
	for i := 0; i < 10; i++ {
		slots = append(slots, slotAt(fmt.Sprintf("%02d:00", 8+i), fmt.Sprintf("%02d:00", 9+i), "t1"))
	}

	page := PageSlots(slots, false)
	assert.Len(t, page.Slots, 8)
	assert.True(t, page.HasMore)
	assert.Equal(t, 10, page.Total)

	all := PageSlots(slots, true)
	assert.Len(t, all.Slots, 10)
	assert.False(t, all.HasMore)

	few := PageSlots(slots[:3], false)
	assert.Len(t, few.Slots, 3)
	assert.False(t, few.HasMore)
}

func TestParseSlotLabel(t *testing.T) {
	start, err := ParseSlotLabel("09:00-10:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00", start)

	_, err = ParseSlotLabel("09:00")
	assert.Error(t, err)
	_, err = ParseSlotLabel("-10:00")
	assert.Error(t, err)
}
