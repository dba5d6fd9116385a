// Package admin backs the staff dashboard: platform metrics, appointment
// workflow management and service-center configuration.
package admin

import "evcare/models"

// DashboardStats is the metrics block shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers          int64            `json:"totalUsers"`
	TotalVehicles       int64            `json:"totalVehicles"`
	AppointmentsByState map[string]int64 `json:"appointmentsByState"`
	TotalRevenue        int64            `json:"totalRevenue"` // VND, paid payments only
	RevenueDisplay      string           `json:"revenueDisplay"`
}

// RevenuePoint is one month of paid revenue.
type RevenuePoint struct {
	Month         string `json:"month"` // "YYYY-MM"
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amountDisplay"`
}

// CenterLoad is the appointment volume of one service center.
type CenterLoad struct {
	CenterID     string `json:"centerId"`
	CenterName   string `json:"centerName"`
	Appointments int64  `json:"appointments"`
}

// AdminService defines back-office operations.
type AdminService interface {
	// Dashboard aggregates platform-wide metrics.
	Dashboard() (*DashboardStats, error)
	// RevenueSeries returns monthly paid revenue for the trailing months.
	RevenueSeries(months int) ([]RevenuePoint, error)
	// CenterUtilization returns appointment volume per active center.
	CenterUtilization() ([]CenterLoad, error)
	// ListUsers returns all registered users.
	ListUsers() ([]models.User, error)
	// ListCenterAppointments returns a center's appointments, newest first.
	ListCenterAppointments(centerID string) ([]models.Appointment, error)
	// AdvanceAppointment moves an appointment along the service workflow.
	AdvanceAppointment(appointmentID, status string) (*models.Appointment, error)
	// CreateCenter registers a new service center.
	CreateCenter(center *models.ServiceCenter) error
	// UpdateCenter modifies a service center.
	UpdateCenter(center *models.ServiceCenter) error
	// SetDaySchedule configures the bookable slots for a center on a date.
	SetDaySchedule(schedule *models.DaySchedule) error
}
