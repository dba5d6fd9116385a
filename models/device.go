package models

import "time"

// Device is a signed-in client device registered for push notifications.
type Device struct {
	DeviceID   string    `bson:"deviceId" json:"deviceId"`
	DeviceName string    `bson:"deviceName" json:"deviceName"`
	FCMToken   string    `bson:"fcmToken,omitempty" json:"-"`
	TokenHash  string    `bson:"tokenHash,omitempty" json:"-"`
	LastLogin  time.Time `bson:"lastLogin" json:"lastLogin"`
}
