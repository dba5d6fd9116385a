package booking

import (
	"fmt"
	"strings"
	"time"

	"evcare/models"
)

// Period is a client-side filter over the fetched slot list; changing it
// never triggers a refetch.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodMorning   Period = "morning"   // 06:00-12:00
	PeriodAfternoon Period = "afternoon" // 12:00-17:00
	PeriodEvening   Period = "evening"   // 17:00-22:00
)

// defaultSlotPageSize is how many filtered slots are shown before the user
// expands "show more".
const defaultSlotPageSize = 8

func periodBounds(p Period) (lo, hi int, bounded bool) {
	switch p {
	case PeriodMorning:
		return 6 * 60, 12 * 60, true
	case PeriodAfternoon:
		return 12 * 60, 17 * 60, true
	case PeriodEvening:
		return 17 * 60, 22 * 60, true
	}
	return 0, 0, false
}

// FilterByPeriod keeps slots whose start minute falls in the period's
// [lo, hi) window. PeriodAll (or any unknown period) keeps everything.
func FilterByPeriod(slots []models.TimeSlot, p Period) []models.TimeSlot {
	lo, hi, bounded := periodBounds(p)
	if !bounded {
		return slots
	}
	var filtered []models.TimeSlot
	for _, s := range slots {
		start := parseMinutes(s.StartTime)
		if start >= lo && start < hi {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// IsSelectableAt reports whether a slot can be chosen: it needs at least one
// available technician and, for today, a start time that has not passed.
func IsSelectableAt(slot models.TimeSlot, date string, now time.Time) bool {
	if len(slot.AvailableTechnicians) == 0 {
		return false
	}
	return !IsTimeSlotPassedAt(slot, date, now)
}

// SelectableSlotsAt filters a day's slots down to the selectable ones.
func SelectableSlotsAt(slots []models.TimeSlot, date string, now time.Time) []models.TimeSlot {
	var selectable []models.TimeSlot
	for _, s := range slots {
		if IsSelectableAt(s, date, now) {
			selectable = append(selectable, s)
		}
	}
	return selectable
}

// PageSlots returns the first page of slots (or all of them when showAll).
func PageSlots(slots []models.TimeSlot, showAll bool) models.SlotPage {
	page := models.SlotPage{Total: len(slots)}
	if showAll || len(slots) <= defaultSlotPageSize {
		page.Slots = slots
		return page
	}
	page.Slots = slots[:defaultSlotPageSize]
	page.HasMore = true
	return page
}

// ParseSlotLabel extracts the start time from a "HH:MM-HH:MM" selection.
// Only the start time is stored on the booking draft.
func ParseSlotLabel(label string) (string, error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		return "", fmt.Errorf("invalid time slot %q", label)
	}
	return strings.TrimSpace(parts[0]), nil
}
