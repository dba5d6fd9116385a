package centerRepo

import "evcare/models"

// CenterRepository defines data access for service centers, their catalogue
// and their daily slot schedules.
type CenterRepository interface {
	// GetByID retrieves a service center by its unique ID.
	GetByID(id string) (*models.ServiceCenter, error)
	// GetAllActive retrieves all active centers.
	GetAllActive() ([]models.ServiceCenter, error)
	// SearchActive retrieves active centers matching a name or address query.
	SearchActive(query string) ([]models.ServiceCenter, error)
	// Create inserts a new center record.
	Create(center *models.ServiceCenter) error
	// Update modifies an existing center record.
	Update(center *models.ServiceCenter) error
	// Delete removes a center record by its ID.
	Delete(id string) error

	// GetServiceType retrieves a service type by ID.
	GetServiceType(id string) (*models.ServiceType, error)
	// GetServiceTypes retrieves service types by their IDs.
	GetServiceTypes(ids []string) ([]models.ServiceType, error)
	// GetServicePackage retrieves a service package by ID.
	GetServicePackage(id string) (*models.ServicePackage, error)
	// GetServicePackages retrieves packages by their IDs.
	GetServicePackages(ids []string) ([]models.ServicePackage, error)

	// GetDaySchedule retrieves the configured slots for a center on a date;
	// nil when no schedule exists for that day.
	GetDaySchedule(centerID, date string) (*models.DaySchedule, error)
	// UpsertDaySchedule stores the slots for a center on a date.
	UpsertDaySchedule(schedule *models.DaySchedule) error
}
