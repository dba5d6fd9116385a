package models

import "time"

// User represents a registered EV Care account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	FullName     string    `bson:"fullName" json:"fullName"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber"`
	Role         string    `bson:"role" json:"role"` // "customer", "staff", or "admin"
	Verified     bool      `bson:"verified" json:"verified"`
	Devices      []Device  `bson:"devices,omitempty" json:"devices,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// UserRegistrationData carries the payload for a new registration.
type UserRegistrationData struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

// AuthResponse is returned on successful authentication. DeviceID echoes the
// device the token is bound to so clients without an X-Device-ID header can
// persist the generated one.
type AuthResponse struct {
	Token    string `json:"token"`
	DeviceID string `json:"deviceId"`
	User     *User  `json:"user"`
}
