package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"evcare/models"
)

// All service centers operate on Vietnam time; schedule math is done against
// this clock regardless of where the server runs.
var businessLocation = loadBusinessLocation()

func loadBusinessLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}

// BusinessNow returns the current time in the business timezone.
func BusinessNow() time.Time {
	return time.Now().In(businessLocation)
}

// parseMinutes converts an "HH:MM" string to minutes since midnight.
// Malformed or empty values parse to 0 rather than erroring.
func parseMinutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return h*60 + m
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// weekdayKey returns the lowercase weekday name used as the hours map key.
func weekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsCurrentlyOpenAt reports whether now falls within today's [open, close)
// window. A close time earlier than the open time wraps past midnight, so a
// center open 23:00-02:00 reports open at 00:30. Missing or closed days
// report false.
func IsCurrentlyOpenAt(hours models.OperatingHours, now time.Time) bool {
	day, ok := hours[weekdayKey(now)]
	if !ok || !day.IsOpen {
		return false
	}

	open := parseMinutes(day.Open)
	close := parseMinutes(day.Close)
	current := now.Hour()*60 + now.Minute()

	if close < open {
		// Window wraps past midnight.
		return current >= open || current < close
	}
	return current >= open && current < close
}

// IsCurrentlyOpen reports open-now against the business clock.
func IsCurrentlyOpen(hours models.OperatingHours) bool {
	return IsCurrentlyOpenAt(hours, BusinessNow())
}

// NextOpeningTimeAt scans today plus the next six days for the first opening.
// If today opens later today it returns "Today at HH:MM"; otherwise
// "<Weekday> at HH:MM" for the first future open day. The second return is
// false when no day in the 7-day window is open.
func NextOpeningTimeAt(hours models.OperatingHours, now time.Time) (string, bool) {
	current := now.Hour()*60 + now.Minute()

	for offset := 0; offset < 7; offset++ {
		day := now.AddDate(0, 0, offset)
		entry, ok := hours[weekdayKey(day)]
		if !ok || !entry.IsOpen {
			continue
		}
		open := parseMinutes(entry.Open)
		if offset == 0 {
			if open > current {
				return "Today at " + formatMinutes(open), true
			}
			continue
		}
		return day.Weekday().String() + " at " + formatMinutes(open), true
	}
	return "", false
}

// NextOpeningTime scans for the next opening against the business clock.
func NextOpeningTime(hours models.OperatingHours) (string, bool) {
	return NextOpeningTimeAt(hours, BusinessNow())
}

// IsTimeSlotPassedAt reports whether a slot's start time has already passed.
// Only "today" can pass: any other date reports false. A start time exactly
// equal to the current minute counts as passed.
func IsTimeSlotPassedAt(slot models.TimeSlot, date string, now time.Time) bool {
	if date != now.Format("2006-01-02") {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	return parseMinutes(slot.StartTime) <= current
}

// IsTimeSlotPassed checks slot expiry against the business clock.
func IsTimeSlotPassed(slot models.TimeSlot, date string) bool {
	return IsTimeSlotPassedAt(slot, date, BusinessNow())
}

// IsDateBookable reports whether the center is open at all on the weekday of
// the given date. Dates that fail to parse are not bookable.
func IsDateBookable(hours models.OperatingHours, date string) bool {
	day, err := time.ParseInLocation("2006-01-02", date, businessLocation)
	if err != nil {
		return false
	}
	entry, ok := hours[weekdayKey(day)]
	return ok && entry.IsOpen
}
