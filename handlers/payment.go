package handlers

import (
	"net/http"
	"strconv"

	"evcare/services/payment"
	"evcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetPaymentStatusHandler returns a payment, refreshed from the gateway when
// still pending. Clients poll this while the checkout modal is open.
func (hb *HandlerBundle) GetPaymentStatusHandler(c *gin.Context) {
	p, err := hb.Payments.GetStatus(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	appointment, err := hb.Bookings.GetByID(p.AppointmentID)
	if err != nil || appointment.UserID != c.GetString("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment":       p,
		"amountDisplay": utils.FormatVND(p.Amount),
		"statusLabel":   utils.PaymentStatusLabel(p.Status),
	})
}

// CancelPaymentHandler cancels an open checkout at the gateway.
func (hb *HandlerBundle) CancelPaymentHandler(c *gin.Context) {
	orderCode, err := strconv.ParseInt(c.Param("orderCode"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order code"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := hb.Payments.Cancel(orderCode, req.Reason); err != nil {
		getLogger(c).Warn("Payment cancellation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment cancelled"})
}

// paymentCallback is the shared body of the PayOS redirect endpoints. The
// redirect query is classified first; the stored payment is then reconciled
// with the gateway so a stale or spoofed redirect cannot flip the record.
func (hb *HandlerBundle) paymentCallback(c *gin.Context) {
	logger := getLogger(c)

	params := payment.ParseCallbackParams(c.Request.URL.Query())
	if err := payment.ValidateCallbackParams(params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result := payment.ClassifyCallback(params)

	orderCode, err := strconv.ParseInt(params.OrderCode, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order code"})
		return
	}

	p, err := hb.Payments.SyncByOrderCode(orderCode)
	if err != nil {
		logger.Warn("Failed to reconcile payment from callback",
			zap.Int64("orderCode", orderCode), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"result": result})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      result,
		"payment":     p,
		"statusLabel": utils.PaymentStatusLabel(p.Status),
	})
}

// PaymentSuccessCallbackHandler lands the PayOS return redirect.
func (hb *HandlerBundle) PaymentSuccessCallbackHandler(c *gin.Context) {
	hb.paymentCallback(c)
}

// PaymentCancelCallbackHandler lands the PayOS cancel redirect.
func (hb *HandlerBundle) PaymentCancelCallbackHandler(c *gin.Context) {
	hb.paymentCallback(c)
}
