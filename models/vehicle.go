package models

import "time"

// Vehicle is an electric vehicle registered by a user.
type Vehicle struct {
	ID                 string    `bson:"id" json:"id"`
	UserID             string    `bson:"userId" json:"userId"`
	VIN                string    `bson:"vin" json:"vin"`
	LicensePlate       string    `bson:"licensePlate" json:"licensePlate"`
	Make               string    `bson:"make" json:"make"`
	Model              string    `bson:"model" json:"model"`
	Year               int       `bson:"year" json:"year"`
	BatteryCapacityKWh float64   `bson:"batteryCapacityKwh" json:"batteryCapacityKwh"`
	OdometerKm         int       `bson:"odometerKm" json:"odometerKm"`
	PhotoURL           string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VehicleInput is the create/update payload for a vehicle.
type VehicleInput struct {
	VIN                string  `json:"vin" binding:"required"`
	LicensePlate       string  `json:"licensePlate" binding:"required"`
	Make               string  `json:"make" binding:"required"`
	Model              string  `json:"model" binding:"required"`
	Year               int     `json:"year" binding:"required"`
	BatteryCapacityKWh float64 `json:"batteryCapacityKwh"`
	OdometerKm         int     `json:"odometerKm"`
}
