package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfileHandler returns the authenticated user's profile.
func (hb *HandlerBundle) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	userID := c.GetString("userID")
	profile, err := hb.Users.GetProfile(userID)
	if err != nil {
		logger.Error("Failed to get user profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler applies partial profile updates.
func (hb *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := hb.Users.UpdateProfile(c.GetString("userID"), updates)
	if err != nil {
		logger.Error("Failed to update profile", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RegisterDeviceTokenHandler attaches an FCM token to the calling device.
func (hb *HandlerBundle) RegisterDeviceTokenHandler(c *gin.Context) {
	var req struct {
		DeviceID string `json:"deviceId" binding:"required"`
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Users.RegisterDeviceToken(c.GetString("userID"), req.DeviceID, req.FCMToken); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token registered"})
}
