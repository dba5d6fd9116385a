package bookingRepo

import "evcare/models"

// BookingRepository defines methods for appointment data access.
type BookingRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// GetByUser retrieves a user's appointments, newest first.
	GetByUser(userID string) ([]models.Appointment, error)
	// GetByCenter retrieves a center's appointments, newest first.
	GetByCenter(centerID string) ([]models.Appointment, error)
	// Create inserts a new appointment record.
	Create(appointment *models.Appointment) error
	// Update modifies an existing appointment record.
	Update(appointment *models.Appointment) error
	// UpdateStatus sets the appointment and payment status fields.
	UpdateStatus(id, status, paymentStatus string) error
	// CountByStatus returns counts of appointments grouped by status.
	CountByStatus() (map[string]int64, error)
	// CountByCenter returns counts of non-cancelled appointments grouped by
	// service center.
	CountByCenter() (map[string]int64, error)
	// CountBookedAt returns how many non-cancelled appointments exist for a
	// center at (date, startTime). Used to derive technician availability.
	CountBookedAt(centerID, date, startTime string) (int64, error)
	// GetUpcoming retrieves confirmed appointments on the given date.
	GetUpcoming(date string) ([]models.Appointment, error)
}
