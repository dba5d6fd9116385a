package handlers

import (
	"errors"
	"net/http"

	"evcare/models"
	"evcare/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ownedSession loads a wizard session and enforces that it belongs to the
// caller. Foreign sessions surface as not-found.
func (hb *HandlerBundle) ownedSession(c *gin.Context, sessionID string) (*models.BookingSession, bool) {
	session, err := hb.Wizard.GetSession(sessionID)
	if err != nil || session.UserID != c.GetString("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking session not found or expired"})
		return nil, false
	}
	return session, true
}

// wizardError maps wizard validation failures onto HTTP statuses.
func wizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking session not found or expired"})
	case errors.Is(err, booking.ErrNoVehicleSelected),
		errors.Is(err, booking.ErrNoCenterSelected),
		errors.Is(err, booking.ErrNoServiceSelected),
		errors.Is(err, booking.ErrNoDateTime),
		errors.Is(err, booking.ErrNoDescription),
		errors.Is(err, booking.ErrIncompleteSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrCenterClosed),
		errors.Is(err, booking.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrVehicleNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrPaymentInconsistent):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Booking wizard error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking operation failed"})
	}
}

// StartBookingSessionHandler opens a fresh wizard session.
func (hb *HandlerBundle) StartBookingSessionHandler(c *gin.Context) {
	session, err := hb.Wizard.StartSession(c.GetString("userID"))
	if err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetBookingSessionHandler returns the current wizard state.
func (hb *HandlerBundle) GetBookingSessionHandler(c *gin.Context) {
	session, ok := hb.ownedSession(c, c.Param("sessionID"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectVehicleHandler records the step-1 vehicle choice.
func (hb *HandlerBundle) SelectVehicleHandler(c *gin.Context) {
	var req struct {
		VehicleID string `json:"vehicleId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if _, ok := hb.ownedSession(c, c.Param("sessionID")); !ok {
		return
	}

	session, err := hb.Wizard.SelectVehicle(c.Param("sessionID"), req.VehicleID)
	if err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectCenterHandler records the step-2 center choice.
func (hb *HandlerBundle) SelectCenterHandler(c *gin.Context) {
	var req struct {
		ServiceCenterID string `json:"serviceCenterId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if _, ok := hb.ownedSession(c, c.Param("sessionID")); !ok {
		return
	}

	session, err := hb.Wizard.SelectCenter(c.Param("sessionID"), req.ServiceCenterID)
	if err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectServiceHandler records the step-3 service choice.
func (hb *HandlerBundle) SelectServiceHandler(c *gin.Context) {
	var req models.ServiceSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if _, ok := hb.ownedSession(c, c.Param("sessionID")); !ok {
		return
	}

	session, err := hb.Wizard.SelectService(c.Param("sessionID"), req)
	if err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetScheduleHandler records the step-4 date and time slot.
func (hb *HandlerBundle) SetScheduleHandler(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
		Slot string `json:"slot"` // "HH:MM-HH:MM"; empty when only the date changed
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if _, ok := hb.ownedSession(c, c.Param("sessionID")); !ok {
		return
	}

	session, err := hb.Wizard.SetSchedule(c.Param("sessionID"), req.Date, req.Slot)
	if err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetDetailsHandler records the description, priority and payment preference.
func (hb *HandlerBundle) SetDetailsHandler(c *gin.Context) {
	var req struct {
		Description       string `json:"description"`
		Priority          string `json:"priority"`
		PaymentPreference string `json:"paymentPreference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if _, ok := hb.ownedSession(c, c.Param("sessionID")); !ok {
		return
	}

	session, err := hb.Wizard.SetDetails(c.Param("sessionID"), req.Description, req.Priority, req.PaymentPreference)
	if err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GoToStepHandler navigates between wizard steps.
func (hb *HandlerBundle) GoToStepHandler(c *gin.Context) {
	var req struct {
		Step int `json:"step"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if _, ok := hb.ownedSession(c, c.Param("sessionID")); !ok {
		return
	}

	session, err := hb.Wizard.GoToStep(c.Param("sessionID"), req.Step)
	if err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SubmitBookingHandler validates the session and creates the appointment,
// and for online payment the PayOS checkout alongside it.
func (hb *HandlerBundle) SubmitBookingHandler(c *gin.Context) {
	if _, ok := hb.ownedSession(c, c.Param("sessionID")); !ok {
		return
	}

	result, err := hb.Wizard.Submit(c.Param("sessionID"))
	if err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CancelBookingSessionHandler discards the wizard draft.
func (hb *HandlerBundle) CancelBookingSessionHandler(c *gin.Context) {
	if _, ok := hb.ownedSession(c, c.Param("sessionID")); !ok {
		return
	}
	if err := hb.Wizard.CancelSession(c.Param("sessionID")); err != nil {
		wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking session discarded"})
}

// ListMyAppointmentsHandler returns the caller's appointments, newest first.
func (hb *HandlerBundle) ListMyAppointmentsHandler(c *gin.Context) {
	appointments, err := hb.Bookings.GetByUser(c.GetString("userID"))
	if err != nil {
		getLogger(c).Error("Failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// GetMyAppointmentHandler returns one of the caller's appointments.
func (hb *HandlerBundle) GetMyAppointmentHandler(c *gin.Context) {
	appointment, err := hb.Bookings.GetByID(c.Param("id"))
	if err != nil || appointment.UserID != c.GetString("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// CancelMyAppointmentHandler cancels one of the caller's appointments. Only
// appointments that have not yet been confirmed by the center can be
// cancelled this way.
func (hb *HandlerBundle) CancelMyAppointmentHandler(c *gin.Context) {
	appointment, err := hb.Bookings.GetByID(c.Param("id"))
	if err != nil || appointment.UserID != c.GetString("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if appointment.Status != models.AppointmentPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending appointments can be cancelled"})
		return
	}

	if err := hb.Bookings.UpdateStatus(appointment.ID, models.AppointmentCancelled, appointment.PaymentStatus); err != nil {
		getLogger(c).Error("Failed to cancel appointment", zap.String("appointmentID", appointment.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}
