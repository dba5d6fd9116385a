package handlers

import (
	"errors"
	"net/http"

	"evcare/models"
	"evcare/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// deviceFromHeaders reads the optional device identity headers.
func deviceFromHeaders(c *gin.Context) models.Device {
	return models.Device{
		DeviceID:   c.GetHeader("X-Device-ID"),
		DeviceName: c.GetHeader("X-Device-Name"),
	}
}

// RegisterHandler creates an account and sends a verification OTP.
func (hb *HandlerBundle) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.UserRegistrationData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := hb.Users.Register(req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    created,
		"message": "Verification code sent to your email",
	})
}

// VerifyOTPHandler confirms the email OTP and signs the user in.
func (hb *HandlerBundle) VerifyOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	auth, err := hb.Users.VerifyEmail(req.Email, req.OTP, deviceFromHeaders(c))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Warn("OTP verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, auth)
}

// ResendOTPHandler sends a fresh verification code.
func (hb *HandlerBundle) ResendOTPHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Users.ResendOTP(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// LoginHandler authenticates by email and password.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	auth, err := hb.Users.Login(req.Email, req.Password, deviceFromHeaders(c))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, auth)
}

// LogoutHandler revokes the token bound to the caller's device.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		var req struct {
			DeviceID string `json:"deviceId"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			deviceID = req.DeviceID
		}
	}
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Device ID is required to log out"})
		return
	}

	if err := hb.Users.Logout(userID, deviceID); err != nil {
		getLogger(c).Warn("Logout failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// ForgotPasswordHandler sends a password-reset code.
func (hb *HandlerBundle) ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Users.ForgotPassword(req.Email); err != nil {
		getLogger(c).Error("Forgot-password failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset code was sent"})
}

// ResetPasswordHandler sets a new password after OTP verification.
func (hb *HandlerBundle) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Users.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
