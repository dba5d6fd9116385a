package models

import "time"

// Wizard steps, in order. A step's selection must exist before advancing
// past it; moving backward never clears later selections.
const (
	StepVehicleSelect = iota
	StepCenterSelect
	StepServiceSelect
	StepDateTime
)

// Booking priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Payment preferences.
const (
	PaymentOnline  = "online"
	PaymentOffline = "offline"
)

// BookingSession is the Redis-resident working copy of an in-progress
// booking wizard. It is created empty, mutated per step, submitted once,
// and discarded after success or on exit.
type BookingSession struct {
	SessionID          string           `json:"sessionId"`
	UserID             string           `json:"userId"`
	Step               int              `json:"step"`
	VehicleID          string           `json:"vehicleId,omitempty"`
	ServiceCenterID    string           `json:"serviceCenterId,omitempty"`
	Selection          ServiceSelection `json:"selection"`
	AppointmentDate    string           `json:"appointmentDate,omitempty"` // "2006-01-02"
	AppointmentTime    string           `json:"appointmentTime,omitempty"` // start "HH:MM"
	ServiceDescription string           `json:"serviceDescription,omitempty"`
	Priority           string           `json:"priority,omitempty"`
	PaymentPreference  string           `json:"paymentPreference,omitempty"`
}

// Appointment statuses.
const (
	AppointmentPending    = "pending"
	AppointmentConfirmed  = "confirmed"
	AppointmentInProgress = "in_progress"
	AppointmentCompleted  = "completed"
	AppointmentCancelled  = "cancelled"
)

// Appointment is the persisted booking record.
type Appointment struct {
	ID                 string           `bson:"id" json:"id"`
	UserID             string           `bson:"userId" json:"userId"`
	VehicleID          string           `bson:"vehicleId" json:"vehicleId"`
	ServiceCenterID    string           `bson:"serviceCenterId" json:"serviceCenterId"`
	Selection          ServiceSelection `bson:"selection" json:"selection"`
	AppointmentDate    string           `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime    string           `bson:"appointmentTime" json:"appointmentTime"`
	ServiceDescription string           `bson:"serviceDescription" json:"serviceDescription"`
	Priority           string           `bson:"priority" json:"priority"`
	Status             string           `bson:"status" json:"status"`
	PaymentStatus      string           `bson:"paymentStatus" json:"paymentStatus"`
	TotalAmount        int64            `bson:"totalAmount" json:"totalAmount"` // VND
	CreatedAt          time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// BookingResult is the response of a submitted wizard session, mirroring
// the create-booking contract consumed by clients.
type BookingResult struct {
	RequiresPayment bool         `json:"requiresPayment"`
	Payment         *Payment     `json:"payment,omitempty"`
	Appointment     *Appointment `json:"appointment"`
}
