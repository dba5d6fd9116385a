package booking

import "evcare/models"

// BookingSessionService drives the four-step booking wizard.
type BookingSessionService interface {
	StartSession(userID string) (*models.BookingSession, error)
	GetSession(sessionID string) (*models.BookingSession, error)
	SelectVehicle(sessionID, vehicleID string) (*models.BookingSession, error)
	SelectCenter(sessionID, centerID string) (*models.BookingSession, error)
	SelectService(sessionID string, selection models.ServiceSelection) (*models.BookingSession, error)
	SetSchedule(sessionID, date, slotLabel string) (*models.BookingSession, error)
	SetDetails(sessionID, description, priority, paymentPreference string) (*models.BookingSession, error)
	GoToStep(sessionID string, step int) (*models.BookingSession, error)
	Submit(sessionID string) (*models.BookingResult, error)
	CancelSession(sessionID string) error
}

// PaymentCreator attaches a gateway payment to a submitted appointment.
// Implemented by the payment service; the sessionID lets the payment flow
// discard the wizard draft once the payment settles.
type PaymentCreator interface {
	CreateForAppointment(appointment *models.Appointment, sessionID string) (*models.Payment, error)
}
