package admin

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "evcare/database/repository/booking"
	centerRepo "evcare/database/repository/center"
	paymentRepo "evcare/database/repository/payment"
	userRepo "evcare/database/repository/user"
	vehicleRepo "evcare/database/repository/vehicle"
	"evcare/models"
	"evcare/utils"

	"github.com/google/uuid"
)

var ErrInvalidTransition = errors.New("invalid appointment status transition")

// workflowNext maps each appointment status to the states staff may move it
// into. Cancellation is allowed until work starts.
var workflowNext = map[string][]string{
	models.AppointmentPending:    {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed:  {models.AppointmentInProgress, models.AppointmentCancelled},
	models.AppointmentInProgress: {models.AppointmentCompleted},
}

// DefaultAdminService is the production AdminService implementation.
type DefaultAdminService struct {
	Users    userRepo.UserRepository
	Vehicles vehicleRepo.VehicleRepository
	Bookings bookingRepo.BookingRepository
	Payments paymentRepo.PaymentRepository
	Centers  centerRepo.CenterRepository
}

func (s *DefaultAdminService) Dashboard() (*DashboardStats, error) {
	users, err := s.Users.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	vehicles, err := s.Vehicles.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count vehicles: %w", err)
	}
	byStatus, err := s.Bookings.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	revenue, err := s.Payments.SumPaidAmounts()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return &DashboardStats{
		TotalUsers:          users,
		TotalVehicles:       vehicles,
		AppointmentsByState: byStatus,
		TotalRevenue:        revenue,
		RevenueDisplay:      utils.FormatVND(revenue),
	}, nil
}

func (s *DefaultAdminService) RevenueSeries(months int) ([]RevenuePoint, error) {
	if months <= 0 {
		months = 6
	}
	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)

	totals, err := s.Payments.SumPaidAmountsByMonth(since)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly revenue: %w", err)
	}

	// Emit every month in the window, including zero-revenue ones, oldest
	// first.
	points := make([]RevenuePoint, 0, months)
	for i := 0; i < months; i++ {
		month := since.AddDate(0, i, 0).Format("2006-01")
		amount := totals[month]
		points = append(points, RevenuePoint{
			Month:         month,
			Amount:        amount,
			AmountDisplay: utils.FormatVND(amount),
		})
	}
	return points, nil
}

func (s *DefaultAdminService) CenterUtilization() ([]CenterLoad, error) {
	counts, err := s.Bookings.CountByCenter()
	if err != nil {
		return nil, fmt.Errorf("failed to load center load: %w", err)
	}
	centers, err := s.Centers.GetAllActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list centers: %w", err)
	}

	loads := make([]CenterLoad, 0, len(centers))
	for _, c := range centers {
		loads = append(loads, CenterLoad{
			CenterID:     c.ID,
			CenterName:   c.Name,
			Appointments: counts[c.ID],
		})
	}
	return loads, nil
}

func (s *DefaultAdminService) ListUsers() ([]models.User, error) {
	return s.Users.GetAll()
}

func (s *DefaultAdminService) ListCenterAppointments(centerID string) ([]models.Appointment, error) {
	return s.Bookings.GetByCenter(centerID)
}

func (s *DefaultAdminService) AdvanceAppointment(appointmentID, status string) (*models.Appointment, error) {
	appointment, err := s.Bookings.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range workflowNext[appointment.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, status)
	}

	if err := s.Bookings.UpdateStatus(appointmentID, status, appointment.PaymentStatus); err != nil {
		return nil, err
	}
	appointment.Status = status
	appointment.UpdatedAt = time.Now()
	return appointment, nil
}

func (s *DefaultAdminService) CreateCenter(center *models.ServiceCenter) error {
	if center.ID == "" {
		center.ID = uuid.New().String()
	}
	now := time.Now()
	center.CreatedAt = now
	center.UpdatedAt = now
	center.Active = true
	return s.Centers.Create(center)
}

func (s *DefaultAdminService) UpdateCenter(center *models.ServiceCenter) error {
	center.UpdatedAt = time.Now()
	return s.Centers.Update(center)
}

func (s *DefaultAdminService) SetDaySchedule(schedule *models.DaySchedule) error {
	if schedule.CenterID == "" || schedule.Date == "" {
		return errors.New("schedule requires a center and a date")
	}
	if _, err := s.Centers.GetByID(schedule.CenterID); err != nil {
		return fmt.Errorf("unknown center: %w", err)
	}
	return s.Centers.UpsertDaySchedule(schedule)
}
