package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	bookingRepo "evcare/database/repository/booking"
	centerRepo "evcare/database/repository/center"
	vehicleRepo "evcare/database/repository/vehicle"
	"evcare/models"
	"evcare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "booking:session:"
	sessionTTL       = 30 * time.Minute

	// Flat fee for an inspection-only visit with no service attached.
	inspectionFeeVND int64 = 200000
)

// DefaultBookingSessionService is the production wizard implementation. The
// draft lives in Redis under a 30-minute TTL and is mutated per step.
type DefaultBookingSessionService struct {
	Cache        *redis.Client
	Vehicles     vehicleRepo.VehicleRepository
	Centers      centerRepo.CenterRepository
	Bookings     bookingRepo.BookingRepository
	Availability AvailabilityEngine
	Payments     PaymentCreator
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *DefaultBookingSessionService) saveSession(session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	ctx := context.Background()
	if err := s.Cache.Set(ctx, sessionKey(session.SessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *DefaultBookingSessionService) loadSession(sessionID string) (*models.BookingSession, error) {
	ctx := context.Background()
	data, err := s.Cache.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

// StartSession creates an empty draft at the vehicle-selection step.
func (s *DefaultBookingSessionService) StartSession(userID string) (*models.BookingSession, error) {
	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Step:      models.StepVehicleSelect,
		Priority:  models.PriorityMedium,
	}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Started booking session",
		zap.String("sessionID", session.SessionID), zap.String("userID", userID))
	return session, nil
}

// GetSession returns the current draft.
func (s *DefaultBookingSessionService) GetSession(sessionID string) (*models.BookingSession, error) {
	return s.loadSession(sessionID)
}

// SelectVehicle records the vehicle choice and advances to center selection.
func (s *DefaultBookingSessionService) SelectVehicle(sessionID, vehicleID string) (*models.BookingSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.Vehicles.GetByID(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}
	if vehicle.UserID != session.UserID {
		return nil, ErrVehicleNotOwned
	}

	session.VehicleID = vehicleID
	if session.Step < models.StepCenterSelect {
		session.Step = models.StepCenterSelect
	}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectCenter records the center choice and advances to service selection.
func (s *DefaultBookingSessionService) SelectCenter(sessionID, centerID string) (*models.BookingSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.VehicleID == "" {
		return nil, ErrNoVehicleSelected
	}

	center, err := s.Centers.GetByID(centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service center: %w", err)
	}

	session.ServiceCenterID = center.ID
	if session.Step < models.StepServiceSelect {
		session.Step = models.StepServiceSelect
	}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectService records the service selection and advances to scheduling.
func (s *DefaultBookingSessionService) SelectService(sessionID string, selection models.ServiceSelection) (*models.BookingSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.ServiceCenterID == "" {
		return nil, ErrNoCenterSelected
	}
	if !selection.IsSet() {
		return nil, ErrNoServiceSelected
	}

	switch selection.Kind {
	case models.SelectionServiceType:
		if _, err := s.Centers.GetServiceType(selection.ID); err != nil {
			return nil, fmt.Errorf("failed to fetch service type: %w", err)
		}
	case models.SelectionServicePackage:
		if _, err := s.Centers.GetServicePackage(selection.ID); err != nil {
			return nil, fmt.Errorf("failed to fetch service package: %w", err)
		}
	}

	session.Selection = selection
	if session.Step < models.StepDateTime {
		session.Step = models.StepDateTime
	}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetSchedule records the chosen date and slot. Picking a new date clears any
// previously chosen time; the slot (when given as "HH:MM-HH:MM") is validated
// against current availability and stored as its start time only.
func (s *DefaultBookingSessionService) SetSchedule(sessionID, date, slotLabel string) (*models.BookingSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.ServiceCenterID == "" {
		return nil, ErrNoCenterSelected
	}

	center, err := s.Centers.GetByID(session.ServiceCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service center: %w", err)
	}
	if !IsDateBookable(center.OperatingHours, date) {
		return nil, ErrCenterClosed
	}

	if date != session.AppointmentDate {
		session.AppointmentDate = date
		session.AppointmentTime = ""
	}

	if slotLabel != "" {
		startTime, err := ParseSlotLabel(slotLabel)
		if err != nil {
			return nil, err
		}
		ok, err := s.Availability.HasSlot(session.ServiceCenterID, date, startTime)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSlotUnavailable
		}
		session.AppointmentTime = startTime
	}

	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetDetails records the description, priority and payment preference.
func (s *DefaultBookingSessionService) SetDetails(sessionID, description, priority, paymentPreference string) (*models.BookingSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.ServiceDescription = strings.TrimSpace(description)
	if priority != "" {
		session.Priority = priority
	}
	if paymentPreference != "" {
		session.PaymentPreference = paymentPreference
	}

	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GoToStep moves the wizard. Backward moves are always allowed and never
// clear later selections; forward moves require each crossed step's
// selection to exist.
func (s *DefaultBookingSessionService) GoToStep(sessionID string, step int) (*models.BookingSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	if step < models.StepVehicleSelect || step > models.StepDateTime {
		return nil, fmt.Errorf("invalid wizard step %d", step)
	}

	if step > session.Step {
		if step > models.StepVehicleSelect && session.VehicleID == "" {
			return nil, ErrNoVehicleSelected
		}
		if step > models.StepCenterSelect && session.ServiceCenterID == "" {
			return nil, ErrNoCenterSelected
		}
		if step > models.StepServiceSelect && !session.Selection.IsSet() {
			return nil, ErrNoServiceSelected
		}
	}

	session.Step = step
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelSession discards the draft.
func (s *DefaultBookingSessionService) CancelSession(sessionID string) error {
	ctx := context.Background()
	if err := s.Cache.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}

// computeAmount prices the draft's selection in VND.
func (s *DefaultBookingSessionService) computeAmount(selection models.ServiceSelection) (int64, error) {
	switch selection.Kind {
	case models.SelectionServiceType:
		st, err := s.Centers.GetServiceType(selection.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to price service type: %w", err)
		}
		return st.BasePrice, nil
	case models.SelectionServicePackage:
		pkg, err := s.Centers.GetServicePackage(selection.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to price service package: %w", err)
		}
		return pkg.Price, nil
	case models.SelectionInspectionOnly:
		return inspectionFeeVND, nil
	}
	return 0, ErrNoServiceSelected
}

// Submit validates the draft and creates the appointment. Validation order:
// date and time, then description, then the vehicle/center/service triple;
// the first failing check short-circuits and nothing is persisted.
func (s *DefaultBookingSessionService) Submit(sessionID string) (*models.BookingResult, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.AppointmentDate == "" || session.AppointmentTime == "" {
		return nil, ErrNoDateTime
	}
	if strings.TrimSpace(session.ServiceDescription) == "" {
		return nil, ErrNoDescription
	}
	if session.VehicleID == "" || session.ServiceCenterID == "" || !session.Selection.IsSet() {
		return nil, ErrIncompleteSelection
	}

	amount, err := s.computeAmount(session.Selection)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ID:                 uuid.New().String(),
		UserID:             session.UserID,
		VehicleID:          session.VehicleID,
		ServiceCenterID:    session.ServiceCenterID,
		Selection:          session.Selection,
		AppointmentDate:    session.AppointmentDate,
		AppointmentTime:    session.AppointmentTime,
		ServiceDescription: session.ServiceDescription,
		Priority:           session.Priority,
		Status:             models.AppointmentPending,
		PaymentStatus:      models.PaymentStatusPending,
		TotalAmount:        amount,
	}
	if err := s.Bookings.Create(appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	logger := utils.GetLogger()

	if session.PaymentPreference == models.PaymentOnline {
		payment, err := s.Payments.CreateForAppointment(appointment, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment: %w", err)
		}
		if payment == nil {
			// The gateway reported no payment although the user asked to pay
			// online. Surface the contradiction instead of guessing; the
			// draft stays intact.
			return nil, ErrPaymentInconsistent
		}
		logger.Info("Appointment created, awaiting payment",
			zap.String("appointmentID", appointment.ID),
			zap.Int64("orderCode", payment.OrderCode))
		// Keep the draft until the payment settles.
		return &models.BookingResult{
			RequiresPayment: true,
			Payment:         payment,
			Appointment:     appointment,
		}, nil
	}

	// Pay-at-center: the booking is complete, discard the draft.
	if err := s.CancelSession(sessionID); err != nil {
		logger.Warn("Failed to discard booking session after submit", zap.Error(err))
	}
	logger.Info("Appointment created",
		zap.String("appointmentID", appointment.ID), zap.String("userID", session.UserID))
	return &models.BookingResult{
		RequiresPayment: false,
		Appointment:     appointment,
	}, nil
}
