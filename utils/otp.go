package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	otpTTL = 5 * time.Minute
	// pendingEmailTTL bounds how long a registration can await verification.
	pendingEmailTTL = 24 * time.Hour
)

// generateSecureOTP generates a secure random OTP of the specified length.
func generateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// SendEmailOTP delivers an OTP to the given address. The mail integration is
// owned by the notification backend; here we log the outgoing message.
func SendEmailOTP(email, message string) error {
	GetLogger().Sugar().Infof("Sending OTP email to %s: %s", email, message)
	return nil
}

// InitiateEmailOTP generates an OTP, stores it under the email with a
// 5-minute TTL and sends it out.
func InitiateEmailOTP(email string) error {
	otp, err := generateSecureOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	ctx := context.Background()
	client := GetOTPCacheClient()
	otpKey := fmt.Sprintf("otp:%s", email)
	if err := client.Set(ctx, otpKey, otp, otpTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to initiate OTP")
	}

	message := fmt.Sprintf("Your EV Care verification code is: %s. It expires in 5 minutes.", otp)
	if err := SendEmailOTP(email, message); err != nil {
		GetLogger().Error("Failed to send OTP email", zap.Error(err))
		return fmt.Errorf("failed to send OTP")
	}
	return nil
}

// VerifyEmailOTP compares the provided OTP against the stored one and
// deletes it on success.
func VerifyEmailOTP(email, providedOTP string) error {
	ctx := context.Background()
	client := GetOTPCacheClient()
	otpKey := fmt.Sprintf("otp:%s", email)

	storedOTP, err := client.Get(ctx, otpKey).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("OTP not found or expired")
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	if storedOTP != providedOTP {
		return fmt.Errorf("OTP does not match")
	}

	if err := client.Del(ctx, otpKey).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}

// MarkPendingVerification records the email awaiting OTP verification.
func MarkPendingVerification(userID, email string) error {
	ctx := context.Background()
	key := fmt.Sprintf("pending-verification:%s", userID)
	return GetOTPCacheClient().Set(ctx, key, email, pendingEmailTTL).Err()
}

// ClearPendingVerification removes the pending-verification marker.
func ClearPendingVerification(userID string) {
	ctx := context.Background()
	key := fmt.Sprintf("pending-verification:%s", userID)
	if err := GetOTPCacheClient().Del(ctx, key).Err(); err != nil {
		GetLogger().Error("Failed to clear pending verification", zap.Error(err))
	}
}
