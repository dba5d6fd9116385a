// Package notification delivers push notifications to users' registered
// devices over Firebase Cloud Messaging.
package notification

import (
	"context"
	"fmt"

	userRepo "evcare/database/repository/user"
	"evcare/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends pushes to every device a user has signed in on.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the FCM-backed implementation.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		utils.GetLogger().Debug("FCM client not configured, skipping push",
			zap.String("userID", userID))
		return nil
	}

	user, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load user for push: %w", err)
	}

	tokens := make([]string, 0, len(user.Devices))
	for _, device := range user.Devices {
		if device.FCMToken != "" {
			tokens = append(tokens, device.FCMToken)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	resp, err := utils.FCMClient.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send push: %w", err)
	}
	if resp.FailureCount > 0 {
		utils.GetLogger().Warn("Some push deliveries failed",
			zap.String("userID", userID),
			zap.Int("failures", resp.FailureCount))
	}
	return nil
}
