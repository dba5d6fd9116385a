package vehicle

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	vehicleRepo "evcare/database/repository/vehicle"
	"evcare/models"
	"evcare/services/storage"
	"evcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// DefaultVehicleService is the production VehicleService implementation.
type DefaultVehicleService struct {
	Repo    vehicleRepo.VehicleRepository
	Storage storage.StorageService
}

func (s *DefaultVehicleService) List(userID string) ([]models.Vehicle, error) {
	return s.Repo.GetByUser(userID)
}

// owned loads a vehicle and checks it belongs to the user. Foreign vehicles
// surface as not-found rather than forbidden.
func (s *DefaultVehicleService) owned(userID, vehicleID string) (*models.Vehicle, error) {
	vehicle, err := s.Repo.GetByID(vehicleID)
	if err != nil {
		return nil, ErrVehicleNotFound
	}
	if vehicle.UserID != userID {
		return nil, ErrVehicleNotFound
	}
	return vehicle, nil
}

func (s *DefaultVehicleService) Get(userID, vehicleID string) (*models.Vehicle, error) {
	return s.owned(userID, vehicleID)
}

func (s *DefaultVehicleService) Create(userID string, input models.VehicleInput) (*models.Vehicle, error) {
	now := time.Now()
	vehicle := &models.Vehicle{
		ID:                 uuid.New().String(),
		UserID:             userID,
		VIN:                input.VIN,
		LicensePlate:       input.LicensePlate,
		Make:               input.Make,
		Model:              input.Model,
		Year:               input.Year,
		BatteryCapacityKWh: input.BatteryCapacityKWh,
		OdometerKm:         input.OdometerKm,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.Create(vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *DefaultVehicleService) Update(userID, vehicleID string, input models.VehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.owned(userID, vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.VIN = input.VIN
	vehicle.LicensePlate = input.LicensePlate
	vehicle.Make = input.Make
	vehicle.Model = input.Model
	vehicle.Year = input.Year
	vehicle.BatteryCapacityKWh = input.BatteryCapacityKWh
	vehicle.OdometerKm = input.OdometerKm
	vehicle.UpdatedAt = time.Now()

	if err := s.Repo.Update(vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *DefaultVehicleService) Delete(userID, vehicleID string) error {
	vehicle, err := s.owned(userID, vehicleID)
	if err != nil {
		return err
	}
	return s.Repo.Delete(vehicle.ID)
}

func (s *DefaultVehicleService) UploadPhoto(ctx context.Context, userID, vehicleID string, file multipart.File) (*models.Vehicle, error) {
	vehicle, err := s.owned(userID, vehicleID)
	if err != nil {
		return nil, err
	}

	url, err := s.Storage.UploadImage(ctx, file, "vehicles")
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	if vehicle.PhotoURL != "" {
		if err := s.Storage.DeleteImage(ctx, vehicle.PhotoURL); err != nil {
			utils.GetLogger().Warn("Failed to remove previous vehicle photo", zap.Error(err))
		}
	}

	vehicle.PhotoURL = url
	vehicle.UpdatedAt = time.Now()
	if err := s.Repo.Update(vehicle); err != nil {
		return nil, fmt.Errorf("failed to save photo URL: %w", err)
	}
	return vehicle, nil
}
