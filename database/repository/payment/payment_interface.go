package paymentRepo

import (
	"time"

	"evcare/models"
)

// PaymentRepository defines methods for payment data access.
type PaymentRepository interface {
	// GetByID retrieves a payment by its payment ID.
	GetByID(paymentID string) (*models.Payment, error)
	// GetByOrderCode retrieves a payment by its PayOS order code.
	GetByOrderCode(orderCode int64) (*models.Payment, error)
	// Create inserts a new payment record.
	Create(payment *models.Payment) error
	// UpdateStatus sets a payment's status (and paidAt for paid).
	UpdateStatus(paymentID, status string) error
	// GetPendingExpiredBefore returns pending payments whose expiry has passed.
	GetPendingExpiredBefore(cutoff int64) ([]models.Payment, error)
	// SumPaidAmounts returns the total amount across paid payments.
	SumPaidAmounts() (int64, error)
	// SumPaidAmountsByMonth returns paid totals keyed by "YYYY-MM", starting
	// from the cutoff.
	SumPaidAmountsByMonth(since time.Time) (map[string]int64, error)
}
