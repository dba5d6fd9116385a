package center

import (
	"errors"
	"fmt"

	centerRepo "evcare/database/repository/center"
	"evcare/models"
	"evcare/services/booking"
)

var ErrCenterNotFound = errors.New("service center not found")

// DefaultCenterService is the production CenterService implementation.
type DefaultCenterService struct {
	Repo centerRepo.CenterRepository
}

func (s *DefaultCenterService) List(query string) ([]models.CenterSummary, error) {
	var centers []models.ServiceCenter
	var err error
	if query != "" {
		centers, err = s.Repo.SearchActive(query)
	} else {
		centers, err = s.Repo.GetAllActive()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list centers: %w", err)
	}

	summaries := make([]models.CenterSummary, 0, len(centers))
	for _, c := range centers {
		summary := models.CenterSummary{
			ID:          c.ID,
			Name:        c.Name,
			Address:     c.Address,
			PhoneNumber: c.PhoneNumber,
			IsOpenNow:   booking.IsCurrentlyOpen(c.OperatingHours),
		}
		if !summary.IsOpenNow {
			if next, ok := booking.NextOpeningTime(c.OperatingHours); ok {
				summary.NextOpening = next
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *DefaultCenterService) Get(centerID string) (*models.ServiceCenter, error) {
	center, err := s.Repo.GetByID(centerID)
	if err != nil {
		return nil, ErrCenterNotFound
	}
	return center, nil
}

func (s *DefaultCenterService) Catalogue(centerID string) ([]models.ServiceType, []models.ServicePackage, error) {
	center, err := s.Get(centerID)
	if err != nil {
		return nil, nil, err
	}

	types, err := s.Repo.GetServiceTypes(center.ServiceTypeIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load service types: %w", err)
	}
	packages, err := s.Repo.GetServicePackages(center.PackageIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load service packages: %w", err)
	}
	return types, packages, nil
}

func (s *DefaultCenterService) IsOpenNow(centerID string) (bool, error) {
	center, err := s.Get(centerID)
	if err != nil {
		return false, err
	}
	return booking.IsCurrentlyOpen(center.OperatingHours), nil
}
