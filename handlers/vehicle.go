package handlers

import (
	"errors"
	"net/http"

	"evcare/models"
	"evcare/services/vehicle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListVehiclesHandler returns the caller's garage.
func (hb *HandlerBundle) ListVehiclesHandler(c *gin.Context) {
	vehicles, err := hb.Vehicles.List(c.GetString("userID"))
	if err != nil {
		getLogger(c).Error("Failed to list vehicles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vehicles"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetVehicleHandler returns one of the caller's vehicles.
func (hb *HandlerBundle) GetVehicleHandler(c *gin.Context) {
	v, err := hb.Vehicles.Get(c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// CreateVehicleHandler registers a vehicle in the caller's garage.
func (hb *HandlerBundle) CreateVehicleHandler(c *gin.Context) {
	var input models.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	v, err := hb.Vehicles.Create(c.GetString("userID"), input)
	if err != nil {
		getLogger(c).Error("Failed to create vehicle", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, v)
}

// UpdateVehicleHandler modifies one of the caller's vehicles.
func (hb *HandlerBundle) UpdateVehicleHandler(c *gin.Context) {
	var input models.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	v, err := hb.Vehicles.Update(c.GetString("userID"), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		getLogger(c).Error("Failed to update vehicle", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// DeleteVehicleHandler removes one of the caller's vehicles.
func (hb *HandlerBundle) DeleteVehicleHandler(c *gin.Context) {
	if err := hb.Vehicles.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// UploadVehiclePhotoHandler accepts a multipart photo upload for a vehicle.
func (hb *HandlerBundle) UploadVehiclePhotoHandler(c *gin.Context) {
	logger := getLogger(c)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable photo file"})
		return
	}
	defer file.Close()

	v, err := hb.Vehicles.UploadPhoto(c.Request.Context(), c.GetString("userID"), c.Param("id"), file)
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		logger.Error("Failed to upload vehicle photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}
	c.JSON(http.StatusOK, v)
}
