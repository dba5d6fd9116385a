package payment

import (
	"context"

	"evcare/models"
)

// PaymentService orchestrates PayOS checkouts for appointments.
type PaymentService interface {
	// CreateForAppointment opens a checkout for the appointment's amount and
	// starts watching it. Satisfies booking.PaymentCreator.
	CreateForAppointment(appointment *models.Appointment, sessionID string) (*models.Payment, error)
	// GetStatus returns the payment, syncing a pending record with the gateway.
	GetStatus(paymentID string) (*models.Payment, error)
	// SyncByOrderCode refreshes a payment from the gateway by order code.
	SyncByOrderCode(orderCode int64) (*models.Payment, error)
	// Cancel cancels the checkout at the gateway. On gateway failure the
	// local state is left unchanged so the caller can retry.
	Cancel(orderCode int64, reason string) error
	// MarkExpired transitions an overdue pending payment to expired.
	MarkExpired(paymentID string) error
}

// PaymentGateway is the PayOS REST surface this service depends on.
type PaymentGateway interface {
	CreatePaymentLink(req CreateLinkRequest) (*PaymentLink, error)
	GetPaymentInfo(orderCode int64) (*PaymentInfo, error)
	CancelPaymentLink(orderCode int64, reason string) error
}

// Notifier pushes payment outcomes to the paying user's devices.
type Notifier interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}
