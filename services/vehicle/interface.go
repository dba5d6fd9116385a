package vehicle

import (
	"context"
	"mime/multipart"

	"evcare/models"
)

// VehicleService defines vehicle garage operations.
type VehicleService interface {
	// List retrieves all vehicles owned by the user.
	List(userID string) ([]models.Vehicle, error)
	// Get retrieves a vehicle, enforcing ownership.
	Get(userID, vehicleID string) (*models.Vehicle, error)
	// Create registers a new vehicle for the user.
	Create(userID string, input models.VehicleInput) (*models.Vehicle, error)
	// Update modifies a vehicle, enforcing ownership.
	Update(userID, vehicleID string, input models.VehicleInput) (*models.Vehicle, error)
	// Delete removes a vehicle, enforcing ownership.
	Delete(userID, vehicleID string) error
	// UploadPhoto stores a vehicle photo and saves its URL.
	UploadPhoto(ctx context.Context, userID, vehicleID string, file multipart.File) (*models.Vehicle, error)
}
