package payment

import (
	"context"
	"fmt"
	"time"

	"evcare/config"
	bookingRepo "evcare/database/repository/booking"
	paymentRepo "evcare/database/repository/payment"
	"evcare/models"
	"evcare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// paymentWindow is how long a checkout stays open before expiring.
const paymentWindow = 15 * time.Minute

// DefaultPaymentService is the production PaymentService implementation.
type DefaultPaymentService struct {
	Repo     paymentRepo.PaymentRepository
	Bookings bookingRepo.BookingRepository
	Gateway  PaymentGateway
	Sessions *redis.Client
	Watchers *WatcherManager
	Notify   Notifier
}

// CreateForAppointment opens a PayOS checkout for the appointment and starts
// a status watcher. The wizard sessionID travels with the watcher so the
// draft can be discarded once the payment settles.
func (s *DefaultPaymentService) CreateForAppointment(appointment *models.Appointment, sessionID string) (*models.Payment, error) {
	orderCode := time.Now().UnixMilli()

	link, err := s.Gateway.CreatePaymentLink(CreateLinkRequest{
		OrderCode:   orderCode,
		Amount:      appointment.TotalAmount,
		Description: fmt.Sprintf("EV Care booking %s", appointment.ID[:8]),
		ReturnURL:   config.AppConfig.PayOSReturnURL,
		CancelURL:   config.AppConfig.PayOSCancelURL,
		ExpiredAt:   time.Now().Add(paymentWindow).Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open checkout: %w", err)
	}

	payment := &models.Payment{
		PaymentID:     uuid.New().String(),
		OrderCode:     orderCode,
		AppointmentID: appointment.ID,
		Amount:        appointment.TotalAmount,
		CheckoutURL:   link.CheckoutURL,
		QRCode:        link.QRCode,
		DeepLink:      link.DeepLink,
		Status:        models.PaymentStatusPending,
		ExpiresAt:     time.Now().Add(paymentWindow),
	}
	if err := s.Repo.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	s.watch(*payment, sessionID)
	return payment, nil
}

// watch starts the 5-second status poll for a pending payment.
func (s *DefaultPaymentService) watch(payment models.Payment, sessionID string) {
	fetch := func() (string, error) {
		info, err := s.Gateway.GetPaymentInfo(payment.OrderCode)
		if err != nil {
			return "", err
		}
		return NormalizeGatewayStatus(info.Status), nil
	}
	s.Watchers.Watch(payment, fetch, func(status string) {
		s.handleTerminal(&payment, status, sessionID)
	})
}

// handleTerminal settles a payment into a terminal state. It is a no-op when
// the stored payment already reached a terminal status, so a late poll or a
// duplicate callback cannot re-fire the outcome.
func (s *DefaultPaymentService) handleTerminal(payment *models.Payment, status, sessionID string) {
	logger := utils.GetLogger()

	stored, err := s.Repo.GetByID(payment.PaymentID)
	if err == nil && models.IsTerminalPaymentStatus(stored.Status) {
		return
	}

	if err := s.Repo.UpdateStatus(payment.PaymentID, status); err != nil {
		logger.Error("Failed to update payment status",
			zap.String("paymentID", payment.PaymentID), zap.Error(err))
	}

	appointment, err := s.Bookings.GetByID(payment.AppointmentID)
	if err != nil {
		logger.Error("Failed to load appointment for settled payment",
			zap.String("appointmentID", payment.AppointmentID), zap.Error(err))
		return
	}

	ctx := context.Background()
	switch status {
	case models.PaymentStatusPaid:
		if err := s.Bookings.UpdateStatus(appointment.ID, models.AppointmentConfirmed, models.PaymentStatusPaid); err != nil {
			logger.Error("Failed to confirm appointment", zap.Error(err))
		}
		if sessionID != "" && s.Sessions != nil {
			// The booking is complete; discard the wizard draft.
			if err := s.Sessions.Del(ctx, "booking:session:"+sessionID).Err(); err != nil {
				logger.Warn("Failed to discard booking session", zap.Error(err))
			}
		}
		s.push(ctx, appointment.UserID, "Payment received",
			fmt.Sprintf("Your payment of %s was confirmed.", utils.FormatVND(payment.Amount)),
			map[string]string{"appointmentId": appointment.ID, "status": status})
	default:
		if err := s.Bookings.UpdateStatus(appointment.ID, appointment.Status, status); err != nil {
			logger.Error("Failed to record payment failure", zap.Error(err))
		}
		s.push(ctx, appointment.UserID, "Payment not completed",
			fmt.Sprintf("Your booking payment is %s.", utils.PaymentStatusLabel(status)),
			map[string]string{"appointmentId": appointment.ID, "status": status})
	}

	logger.Info("Payment settled",
		zap.String("paymentID", payment.PaymentID),
		zap.Int64("orderCode", payment.OrderCode),
		zap.String("status", status))
	s.Watchers.Stop(payment.PaymentID)
}

func (s *DefaultPaymentService) push(ctx context.Context, userID, title, body string, data map[string]string) {
	if s.Notify == nil {
		return
	}
	if err := s.Notify.SendUserPushNotification(ctx, userID, title, body, data); err != nil {
		utils.GetLogger().Warn("Failed to push payment notification", zap.Error(err))
	}
}

// GetStatus returns the payment, refreshing a pending record from the gateway.
func (s *DefaultPaymentService) GetStatus(paymentID string) (*models.Payment, error) {
	payment, err := s.Repo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if models.IsTerminalPaymentStatus(payment.Status) {
		return payment, nil
	}

	info, err := s.Gateway.GetPaymentInfo(payment.OrderCode)
	if err != nil {
		// Gateway hiccups leave the stored view untouched; the watcher keeps
		// polling.
		return payment, nil
	}
	status := NormalizeGatewayStatus(info.Status)
	if status != payment.Status {
		if models.IsTerminalPaymentStatus(status) {
			s.handleTerminal(payment, status, "")
		} else if err := s.Repo.UpdateStatus(paymentID, status); err != nil {
			return nil, err
		}
		payment.Status = status
	}
	return payment, nil
}

// SyncByOrderCode refreshes a payment from the gateway by order code.
func (s *DefaultPaymentService) SyncByOrderCode(orderCode int64) (*models.Payment, error) {
	payment, err := s.Repo.GetByOrderCode(orderCode)
	if err != nil {
		return nil, err
	}
	return s.GetStatus(payment.PaymentID)
}

// Cancel cancels the checkout at the gateway. A gateway failure is returned
// as-is and leaves the local payment unchanged so the caller can retry.
func (s *DefaultPaymentService) Cancel(orderCode int64, reason string) error {
	payment, err := s.Repo.GetByOrderCode(orderCode)
	if err != nil {
		return err
	}
	if models.IsTerminalPaymentStatus(payment.Status) {
		return fmt.Errorf("payment is already %s", payment.Status)
	}

	if err := s.Gateway.CancelPaymentLink(orderCode, reason); err != nil {
		return fmt.Errorf("failed to cancel payment: %w", err)
	}

	s.handleTerminal(payment, models.PaymentStatusCancelled, "")
	return nil
}

// MarkExpired transitions an overdue pending payment to expired. Used by the
// background sweeper for payments whose watcher is gone (e.g. after restart).
func (s *DefaultPaymentService) MarkExpired(paymentID string) error {
	payment, err := s.Repo.GetByID(paymentID)
	if err != nil {
		return err
	}
	if models.IsTerminalPaymentStatus(payment.Status) {
		return nil
	}
	s.handleTerminal(payment, models.PaymentStatusExpired, "")
	return nil
}
