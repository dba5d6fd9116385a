package booking

import (
	"fmt"

	bookingRepo "evcare/database/repository/booking"
	centerRepo "evcare/database/repository/center"
	"evcare/models"
)

// AvailabilityEngine computes selectable slots for a center and date.
type AvailabilityEngine interface {
	// GetAvailableSlots returns the filtered, paged slots for (center, date).
	GetAvailableSlots(centerID, date string, period Period, showAll bool) (*models.SlotPage, error)
	// HasSlot reports whether the given start time is still selectable.
	HasSlot(centerID, date, startTime string) (bool, error)
}

// DefaultAvailabilityEngine derives availability from the configured day
// schedule minus already-booked appointments.
type DefaultAvailabilityEngine struct {
	Centers  centerRepo.CenterRepository
	Bookings bookingRepo.BookingRepository
}

// loadDaySlots loads the schedule and trims each slot's technician list by
// the number of existing bookings at that start time.
func (e *DefaultAvailabilityEngine) loadDaySlots(centerID, date string) ([]models.TimeSlot, error) {
	schedule, err := e.Centers.GetDaySchedule(centerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if schedule == nil {
		return nil, nil
	}

	slots := make([]models.TimeSlot, 0, len(schedule.Slots))
	for _, s := range schedule.Slots {
		booked, err := e.Bookings.CountBookedAt(centerID, date, s.StartTime)
		if err != nil {
			return nil, fmt.Errorf("failed to count bookings: %w", err)
		}
		if int(booked) >= len(s.AvailableTechnicians) {
			s.AvailableTechnicians = nil
		} else if booked > 0 {
			s.AvailableTechnicians = s.AvailableTechnicians[booked:]
		}
		slots = append(slots, s)
	}
	return slots, nil
}

// GetAvailableSlots returns the selectable slots for (center, date), filtered
// by period and paged to the first eight unless showAll is set.
func (e *DefaultAvailabilityEngine) GetAvailableSlots(centerID, date string, period Period, showAll bool) (*models.SlotPage, error) {
	slots, err := e.loadDaySlots(centerID, date)
	if err != nil {
		return nil, err
	}

	selectable := SelectableSlotsAt(slots, date, BusinessNow())
	filtered := FilterByPeriod(selectable, period)
	page := PageSlots(filtered, showAll)
	return &page, nil
}

// HasSlot reports whether the given start time is still selectable.
func (e *DefaultAvailabilityEngine) HasSlot(centerID, date, startTime string) (bool, error) {
	slots, err := e.loadDaySlots(centerID, date)
	if err != nil {
		return false, err
	}
	now := BusinessNow()
	for _, s := range slots {
		if s.StartTime == startTime && IsSelectableAt(s, date, now) {
			return true, nil
		}
	}
	return false, nil
}
