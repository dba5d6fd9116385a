package handlers

import (
	"net/http"

	"evcare/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListCentersHandler returns active centers with open-now annotations. An
// optional "q" query filters by name or address.
func (hb *HandlerBundle) ListCentersHandler(c *gin.Context) {
	centers, err := hb.Centers.List(c.Query("q"))
	if err != nil {
		getLogger(c).Error("Failed to list centers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list centers"})
		return
	}
	c.JSON(http.StatusOK, centers)
}

// GetCenterHandler returns a center's full detail.
func (hb *HandlerBundle) GetCenterHandler(c *gin.Context) {
	center, err := hb.Centers.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service center not found"})
		return
	}
	c.JSON(http.StatusOK, center)
}

// GetCenterCatalogueHandler returns the services and packages a center offers.
func (hb *HandlerBundle) GetCenterCatalogueHandler(c *gin.Context) {
	types, packages, err := hb.Centers.Catalogue(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service center not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"serviceTypes":    types,
		"servicePackages": packages,
	})
}

// GetCenterSlotsHandler returns selectable time slots for a center and date.
// Query params: date (required), period (all|morning|afternoon|evening),
// all=true to disable paging.
func (hb *HandlerBundle) GetCenterSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}
	period := booking.Period(c.DefaultQuery("period", string(booking.PeriodAll)))
	showAll := c.Query("all") == "true"

	page, err := hb.Availability.GetAvailableSlots(c.Param("id"), date, period, showAll)
	if err != nil {
		getLogger(c).Error("Failed to load slots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load time slots"})
		return
	}
	c.JSON(http.StatusOK, page)
}
