package payment

import (
	"errors"
	"net/url"

	"evcare/models"
)

// ErrInvalidCallback marks a redirect missing its identifying parameters.
var ErrInvalidCallback = errors.New("payment callback is missing required parameters")

// ParseCallbackParams extracts the PayOS redirect parameters from a query.
func ParseCallbackParams(query url.Values) models.CallbackParams {
	return models.CallbackParams{
		Code:      query.Get("code"),
		ID:        query.Get("id"),
		Cancel:    query.Get("cancel"),
		Status:    query.Get("status"),
		OrderCode: query.Get("orderCode"),
	}
}

// ValidateCallbackParams requires code, id and orderCode to all be present.
// A redirect missing any of them is rejected outright rather than guessed at.
func ValidateCallbackParams(params models.CallbackParams) error {
	if params.Code == "" || params.ID == "" || params.OrderCode == "" {
		return ErrInvalidCallback
	}
	return nil
}

// ClassifyCallback normalizes redirect parameters into an outcome. The first
// matching rule wins: an explicit cancel flag always overrides a stale "PAID"
// status string from the same redirect.
func ClassifyCallback(params models.CallbackParams) models.PaymentCallbackResult {
	switch {
	case params.Cancel == "true":
		return models.PaymentCallbackResult{
			IsCancelled: true,
			Status:      models.PaymentStatusCancelled,
			Reason:      "payment was cancelled",
		}
	case params.Status == "PAID" && params.Cancel == "false":
		return models.PaymentCallbackResult{
			IsSuccess: true,
			Status:    models.PaymentStatusPaid,
		}
	case params.Status == "CANCELLED":
		return models.PaymentCallbackResult{
			IsCancelled: true,
			Status:      models.PaymentStatusCancelled,
			Reason:      "payment was cancelled",
		}
	case params.Status == "EXPIRED":
		return models.PaymentCallbackResult{
			Status: models.PaymentStatusExpired,
			Reason: "payment expired before completion",
		}
	case params.Status == "FAILED":
		return models.PaymentCallbackResult{
			Status: models.PaymentStatusFailed,
			Reason: "payment failed",
		}
	}
	return models.PaymentCallbackResult{
		Status: models.PaymentStatusFailed,
		Reason: "unrecognized payment outcome",
	}
}
