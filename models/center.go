package models

import "time"

// DayHours is a single weekday's operating window. Times are "HH:MM" strings
// in the center's local timezone. A close time earlier than the open time
// means the window wraps past midnight.
type DayHours struct {
	Open   string `bson:"open" json:"open"`
	Close  string `bson:"close" json:"close"`
	IsOpen bool   `bson:"isOpen" json:"isOpen"`
}

// OperatingHours maps lowercase weekday names ("monday"...) to that day's hours.
type OperatingHours map[string]DayHours

// Technician works at a service center and can be assigned to time slots.
type Technician struct {
	ID     string   `bson:"id" json:"id"`
	Name   string   `bson:"name" json:"name"`
	Skills []string `bson:"skills,omitempty" json:"skills,omitempty"`
}

// ServiceCenter is a physical location offering EV maintenance.
type ServiceCenter struct {
	ID             string         `bson:"id" json:"id"`
	Name           string         `bson:"name" json:"name"`
	Address        string         `bson:"address" json:"address"`
	PhoneNumber    string         `bson:"phoneNumber" json:"phoneNumber"`
	OperatingHours OperatingHours `bson:"operatingHours" json:"operatingHours"`
	Technicians    []Technician   `bson:"technicians,omitempty" json:"technicians,omitempty"`
	ServiceTypeIDs []string       `bson:"serviceTypeIds,omitempty" json:"serviceTypeIds,omitempty"`
	PackageIDs     []string       `bson:"packageIds,omitempty" json:"packageIds,omitempty"`
	GalleryURLs    []string       `bson:"galleryUrls,omitempty" json:"galleryUrls,omitempty"`
	Active         bool           `bson:"active" json:"active"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// CenterSummary is the list-view projection with open-now annotations.
type CenterSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	IsOpenNow   bool   `json:"isOpenNow"`
	NextOpening string `json:"nextOpening,omitempty"`
}
