package handlers

import (
	bookingRepoPkg "evcare/database/repository/booking"
	userRepoPkg "evcare/database/repository/user"
	"evcare/services/admin"
	"evcare/services/booking"
	"evcare/services/center"
	"evcare/services/intelligence"
	"evcare/services/payment"
	"evcare/services/user"
	"evcare/services/vehicle"
)

// HandlerBundle groups the services the endpoint handlers are built on.
type HandlerBundle struct {
	Users        user.UserService
	Vehicles     vehicle.VehicleService
	Centers      center.CenterService
	Wizard       booking.BookingSessionService
	Availability booking.AvailabilityEngine
	Payments     payment.PaymentService
	Admin        admin.AdminService
	Predictions  intelligence.PredictionService

	// Direct repo access for read-only appointment listings.
	Bookings bookingRepoPkg.BookingRepository

	// UserRepo backs the auth middleware's token-hash check.
	UserRepo userRepoPkg.UserRepository
}
