package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"evcare/models"
)

// CreateLinkRequest is the payload for opening a PayOS checkout.
type CreateLinkRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	ExpiredAt   int64  `json:"expiredAt,omitempty"`
	Signature   string `json:"signature"`
}

// PaymentLink is the checkout artifact set returned by PayOS.
type PaymentLink struct {
	PaymentLinkID string `json:"paymentLinkId"`
	OrderCode     int64  `json:"orderCode"`
	Amount        int64  `json:"amount"`
	CheckoutURL   string `json:"checkoutUrl"`
	QRCode        string `json:"qrCode"`
	DeepLink      string `json:"deepLink,omitempty"`
	Status        string `json:"status"`
}

// PaymentInfo is the gateway's view of an existing payment.
type PaymentInfo struct {
	PaymentLinkID string `json:"id"`
	OrderCode     int64  `json:"orderCode"`
	Amount        int64  `json:"amount"`
	AmountPaid    int64  `json:"amountPaid"`
	Status        string `json:"status"`
}

type payosEnvelope struct {
	Code string          `json:"code"`
	Desc string          `json:"desc"`
	Data json.RawMessage `json:"data"`
}

// PayOSClient is an HTTP client for the PayOS merchant API.
type PayOSClient struct {
	BaseURL     string
	ClientID    string
	APIKey      string
	ChecksumKey string
	HTTPClient  *http.Client
}

// NewPayOSClient builds a client with a bounded request timeout.
func NewPayOSClient(baseURL, clientID, apiKey, checksumKey string) *PayOSClient {
	return &PayOSClient{
		BaseURL:     baseURL,
		ClientID:    clientID,
		APIKey:      apiKey,
		ChecksumKey: checksumKey,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// sign computes the HMAC-SHA256 request signature over the alphabetically
// ordered key=value pairs PayOS verifies.
func (c *PayOSClient) sign(req CreateLinkRequest) string {
	payload := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelURL, req.Description, req.OrderCode, req.ReturnURL)
	mac := hmac.New(sha256.New, []byte(c.ChecksumKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *PayOSClient) do(method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("payos: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("payos: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.ClientID)
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("payos: request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope payosEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("payos: failed to decode response: %w", err)
	}
	if envelope.Code != "00" {
		return fmt.Errorf("payos: gateway error %s: %s", envelope.Code, envelope.Desc)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("payos: failed to decode payload: %w", err)
		}
	}
	return nil
}

// CreatePaymentLink opens a checkout at the gateway.
func (c *PayOSClient) CreatePaymentLink(req CreateLinkRequest) (*PaymentLink, error) {
	req.Signature = c.sign(req)
	var link PaymentLink
	if err := c.do(http.MethodPost, "/v2/payment-requests", req, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// GetPaymentInfo fetches the gateway's current view of a payment.
func (c *PayOSClient) GetPaymentInfo(orderCode int64) (*PaymentInfo, error) {
	var info PaymentInfo
	path := fmt.Sprintf("/v2/payment-requests/%d", orderCode)
	if err := c.do(http.MethodGet, path, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CancelPaymentLink cancels the checkout at the gateway.
func (c *PayOSClient) CancelPaymentLink(orderCode int64, reason string) error {
	path := fmt.Sprintf("/v2/payment-requests/%d/cancel", orderCode)
	body := map[string]string{"cancellationReason": reason}
	return c.do(http.MethodPost, path, body, nil)
}

// NormalizeGatewayStatus maps PayOS status strings onto the local enum.
func NormalizeGatewayStatus(status string) string {
	switch status {
	case "PAID":
		return models.PaymentStatusPaid
	case "CANCELLED":
		return models.PaymentStatusCancelled
	case "EXPIRED":
		return models.PaymentStatusExpired
	case "FAILED":
		return models.PaymentStatusFailed
	case "REFUNDED":
		return models.PaymentStatusRefunded
	}
	// PENDING, PROCESSING and anything unknown stay pending.
	return models.PaymentStatusPending
}
