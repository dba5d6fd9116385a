package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"evcare/models"
	"evcare/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler returns platform-wide metrics.
func (hb *HandlerBundle) DashboardHandler(c *gin.Context) {
	stats, err := hb.Admin.Dashboard()
	if err != nil {
		getLogger(c).Error("Failed to build dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RevenueSeriesHandler returns monthly paid revenue for the trailing window.
// The "months" query controls the window size, defaulting to six.
func (hb *HandlerBundle) RevenueSeriesHandler(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	points, err := hb.Admin.RevenueSeries(months)
	if err != nil {
		getLogger(c).Error("Failed to build revenue series", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build revenue series"})
		return
	}
	c.JSON(http.StatusOK, points)
}

// CenterUtilizationHandler returns appointment volume per active center.
func (hb *HandlerBundle) CenterUtilizationHandler(c *gin.Context) {
	loads, err := hb.Admin.CenterUtilization()
	if err != nil {
		getLogger(c).Error("Failed to build center utilization", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build center utilization"})
		return
	}
	c.JSON(http.StatusOK, loads)
}

// ListUsersHandler returns every registered user.
func (hb *HandlerBundle) ListUsersHandler(c *gin.Context) {
	users, err := hb.Admin.ListUsers()
	if err != nil {
		getLogger(c).Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListCenterAppointmentsHandler returns a center's appointments.
func (hb *HandlerBundle) ListCenterAppointmentsHandler(c *gin.Context) {
	appointments, err := hb.Admin.ListCenterAppointments(c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to list center appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// AdvanceAppointmentHandler moves an appointment along the service workflow.
func (hb *HandlerBundle) AdvanceAppointmentHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appointment, err := hb.Admin.AdvanceAppointment(c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// CreateCenterHandler registers a new service center.
func (hb *HandlerBundle) CreateCenterHandler(c *gin.Context) {
	var center models.ServiceCenter
	if err := c.ShouldBindJSON(&center); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Admin.CreateCenter(&center); err != nil {
		getLogger(c).Error("Failed to create center", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create center"})
		return
	}
	c.JSON(http.StatusCreated, center)
}

// UpdateCenterHandler modifies a service center.
func (hb *HandlerBundle) UpdateCenterHandler(c *gin.Context) {
	var center models.ServiceCenter
	if err := c.ShouldBindJSON(&center); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	center.ID = c.Param("id")

	if err := hb.Admin.UpdateCenter(&center); err != nil {
		getLogger(c).Error("Failed to update center", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update center"})
		return
	}
	c.JSON(http.StatusOK, center)
}

// SetDayScheduleHandler configures the bookable slots for a center on a date.
func (hb *HandlerBundle) SetDayScheduleHandler(c *gin.Context) {
	var schedule models.DaySchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	schedule.CenterID = c.Param("id")

	if err := hb.Admin.SetDaySchedule(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schedule)
}
