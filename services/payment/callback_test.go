package payment

import (
	"net/url"
	"testing"

	"evcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallbackParams(t *testing.T) {
	query, err := url.ParseQuery("code=00&id=abc123&cancel=false&status=PAID&orderCode=42")
	require.NoError(t, err)

	params := ParseCallbackParams(query)
	assert.Equal(t, "00", params.Code)
	assert.Equal(t, "abc123", params.ID)
	assert.Equal(t, "false", params.Cancel)
	assert.Equal(t, "PAID", params.Status)
	assert.Equal(t, "42", params.OrderCode)
}

func TestValidateCallbackParams(t *testing.T) {
	valid := models.CallbackParams{Code: "00", ID: "abc", OrderCode: "42"}
	assert.NoError(t, ValidateCallbackParams(valid))

	for _, params := range []models.CallbackParams{
		{ID: "abc", OrderCode: "42"},
		{Code: "00", OrderCode: "42"},
		{Code: "00", ID: "abc"},
	} {
		assert.ErrorIs(t, ValidateCallbackParams(params), ErrInvalidCallback)
	}
}

func TestClassifyCallbackSuccess(t *testing.T) {
	result := ClassifyCallback(models.CallbackParams{
		Code: "00", ID: "abc", Cancel: "false", Status: "PAID", OrderCode: "42",
	})
	assert.True(t, result.IsSuccess)
	assert.False(t, result.IsCancelled)
	assert.Equal(t, models.PaymentStatusPaid, result.Status)
}

func TestClassifyCallbackCancelFlagOverridesPaidStatus(t *testing.T) {
	// A cancel redirect can carry a stale PAID status string; the explicit
	// cancel flag must win.
	result := ClassifyCallback(models.CallbackParams{
		Code: "00", ID: "abc", Cancel: "true", Status: "PAID", OrderCode: "42",
	})
	assert.True(t, result.IsCancelled)
	assert.False(t, result.IsSuccess)
	assert.Equal(t, models.PaymentStatusCancelled, result.Status)
}

func TestClassifyCallbackStatuses(t *testing.T) {
	for _, tc := range []struct {
		status      string
		want        string
		isCancelled bool
	}{
		{"CANCELLED", models.PaymentStatusCancelled, true},
		{"EXPIRED", models.PaymentStatusExpired, false},
		{"FAILED", models.PaymentStatusFailed, false},
	} {
		result := ClassifyCallback(models.CallbackParams{
			Code: "00", ID: "abc", Cancel: "false", Status: tc.status, OrderCode: "42",
		})
		assert.Equal(t, tc.want, result.Status, tc.status)
		assert.Equal(t, tc.isCancelled, result.IsCancelled, tc.status)
		assert.False(t, result.IsSuccess, tc.status)
	}
}

func TestClassifyCallbackUnknownStatus(t *testing.T) {
	result := ClassifyCallback(models.CallbackParams{
		Code: "00", ID: "abc", Cancel: "false", Status: "SOMETHING", OrderCode: "42",
	})
	assert.False(t, result.IsSuccess)
	assert.False(t, result.IsCancelled)
	assert.Equal(t, models.PaymentStatusFailed, result.Status)
	assert.Equal(t, "unrecognized payment outcome", result.Reason)
}
