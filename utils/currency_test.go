package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "0 ₫", FormatVND(0))
	assert.Equal(t, "500 ₫", FormatVND(500))
	assert.Equal(t, "1.000 ₫", FormatVND(1000))
	assert.Equal(t, "200.000 ₫", FormatVND(200000))
	assert.Equal(t, "1.234.567 ₫", FormatVND(1234567))
	assert.Equal(t, "-1.500.000 ₫", FormatVND(-1500000))
}

func TestParseVND(t *testing.T) {
	amount, err := ParseVND("1.234.567 ₫")
	require.NoError(t, err)
	assert.Equal(t, int64(1234567), amount)

	amount, err = ParseVND("-1.500.000 ₫")
	require.NoError(t, err)
	assert.Equal(t, int64(-1500000), amount)

	_, err = ParseVND("miễn phí")
	assert.Error(t, err)
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, amount := range []int64{0, 1, 999, 1000, 200000, 999999999, -42000} {
		parsed, err := ParseVND(FormatVND(amount))
		require.NoError(t, err)
		assert.Equal(t, amount, parsed)
	}
}

func TestPaymentStatusLabel(t *testing.T) {
	assert.Equal(t, "Đã thanh toán", PaymentStatusLabel("paid"))
	assert.Equal(t, "Chờ thanh toán", PaymentStatusLabel("pending"))

	// Unknown statuses pass through unchanged.
	assert.Equal(t, "weird", PaymentStatusLabel("weird"))
}
