package booking

import "errors"

// Validation errors surfaced to the user before any persistence happens.
var (
	ErrSessionNotFound     = errors.New("booking session not found or expired")
	ErrNoVehicleSelected   = errors.New("please select a vehicle first")
	ErrNoCenterSelected    = errors.New("please select a service center first")
	ErrNoServiceSelected   = errors.New("please select a service first")
	ErrNoDateTime          = errors.New("please choose a date and time for your appointment")
	ErrNoDescription       = errors.New("please describe the issue or service you need")
	ErrIncompleteSelection = errors.New("vehicle, service center and service selection are required")
	ErrCenterClosed        = errors.New("the service center is closed on the selected date")
	ErrSlotUnavailable     = errors.New("the selected time slot is no longer available")
	ErrVehicleNotOwned     = errors.New("vehicle does not belong to this user")

	// ErrPaymentInconsistent marks the server contradiction between an online
	// payment preference and a booking that came back without a payment.
	ErrPaymentInconsistent = errors.New("online payment was requested but no payment was created")
)
