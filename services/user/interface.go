package user

import "evcare/models"

// UserService defines account management operations.
type UserService interface {
	// Register creates an unverified account and sends an email OTP.
	Register(data models.UserRegistrationData) (*models.User, error)
	// VerifyEmail checks the OTP, marks the account verified and signs it in.
	VerifyEmail(email, otp string, device models.Device) (*models.AuthResponse, error)
	// ResendOTP sends a fresh verification code to an unverified account.
	ResendOTP(email string) error
	// Login authenticates by email and password and records the device.
	Login(email, password string, device models.Device) (*models.AuthResponse, error)
	// Logout revokes the token bound to the given device.
	Logout(userID, deviceID string) error
	// ForgotPassword sends a password-reset code to the account email.
	ForgotPassword(email string) error
	// ResetPassword sets a new password after OTP verification.
	ResetPassword(email, otp, newPassword string) error
	// GetProfile retrieves a user by ID.
	GetProfile(userID string) (*models.User, error)
	// UpdateProfile applies profile field changes.
	UpdateProfile(userID string, updates map[string]interface{}) (*models.User, error)
	// RegisterDeviceToken attaches an FCM token to a signed-in device.
	RegisterDeviceToken(userID, deviceID, fcmToken string) error
}
