package models

import "time"

// Payment statuses. Paid, failed, cancelled and expired are terminal:
// status polling stops once one of them is observed.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusExpired   = "expired"
	PaymentStatusRefunded  = "refunded"
)

// IsTerminalPaymentStatus reports whether polling should stop for status.
func IsTerminalPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusExpired:
		return true
	}
	return false
}

// Payment is a PayOS checkout attached to an appointment.
type Payment struct {
	PaymentID     string    `bson:"paymentId" json:"paymentId"`
	OrderCode     int64     `bson:"orderCode" json:"orderCode"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	Amount        int64     `bson:"amount" json:"amount"` // VND
	CheckoutURL   string    `bson:"checkoutUrl" json:"checkoutUrl"`
	QRCode        string    `bson:"qrCode" json:"qrCode"`
	DeepLink      string    `bson:"deepLink,omitempty" json:"deepLink,omitempty"`
	Status        string    `bson:"status" json:"status"`
	ExpiresAt     time.Time `bson:"expiresAt" json:"expiresAt"`
	PaidAt        time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CallbackParams are the query parameters PayOS appends to redirect URLs.
type CallbackParams struct {
	Code      string `json:"code"`
	ID        string `json:"id"`
	Cancel    string `json:"cancel"`
	Status    string `json:"status"`
	OrderCode string `json:"orderCode"`
}

// PaymentCallbackResult is the normalized classification of a redirect.
// Derived per request, never stored.
type PaymentCallbackResult struct {
	IsSuccess   bool   `json:"isSuccess"`
	IsCancelled bool   `json:"isCancelled"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}
