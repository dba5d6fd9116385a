package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"evcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignMatchesChecksumFormula(t *testing.T) {
	c := NewPayOSClient("https://example.invalid", "cid", "key", "checksum-secret")
	req := CreateLinkRequest{
		OrderCode:   42,
		Amount:      500000,
		Description: "EV Care booking abc",
		ReturnURL:   "https://app.example/return",
		CancelURL:   "https://app.example/cancel",
	}

	mac := hmac.New(sha256.New, []byte("checksum-secret"))
	mac.Write([]byte("amount=500000&cancelUrl=https://app.example/cancel&description=EV Care booking abc&orderCode=42&returnUrl=https://app.example/return"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, c.sign(req))
}

func TestCreatePaymentLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/payment-requests", r.URL.Path)
		assert.Equal(t, "cid", r.Header.Get("x-client-id"))
		assert.Equal(t, "key", r.Header.Get("x-api-key"))

		var req CreateLinkRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Signature)

		json.NewEncoder(w).Encode(map[string]any{
			"code": "00",
			"desc": "success",
			"data": PaymentLink{
				PaymentLinkID: "pl-1",
				OrderCode:     req.OrderCode,
				Amount:        req.Amount,
				CheckoutURL:   "https://pay.payos.vn/web/pl-1",
				QRCode:        "qr-data",
				Status:        "PENDING",
			},
		})
	}))
	defer srv.Close()

	c := NewPayOSClient(srv.URL, "cid", "key", "checksum")
	link, err := c.CreatePaymentLink(CreateLinkRequest{OrderCode: 7, Amount: 200000})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.payos.vn/web/pl-1", link.CheckoutURL)
	assert.Equal(t, int64(7), link.OrderCode)
}

func TestDoSurfacesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"code": "401", "desc": "invalid api key"})
	}))
	defer srv.Close()

	c := NewPayOSClient(srv.URL, "cid", "bad-key", "checksum")
	_, err := c.GetPaymentInfo(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestNormalizeGatewayStatus(t *testing.T) {
	assert.Equal(t, models.PaymentStatusPaid, NormalizeGatewayStatus("PAID"))
	assert.Equal(t, models.PaymentStatusCancelled, NormalizeGatewayStatus("CANCELLED"))
	assert.Equal(t, models.PaymentStatusExpired, NormalizeGatewayStatus("EXPIRED"))
	assert.Equal(t, models.PaymentStatusFailed, NormalizeGatewayStatus("FAILED"))
	assert.Equal(t, models.PaymentStatusRefunded, NormalizeGatewayStatus("REFUNDED"))

	assert.Equal(t, models.PaymentStatusPending, NormalizeGatewayStatus("PENDING"))
	assert.Equal(t, models.PaymentStatusPending, NormalizeGatewayStatus("PROCESSING"))
	assert.Equal(t, models.PaymentStatusPending, NormalizeGatewayStatus("whatever"))
}
