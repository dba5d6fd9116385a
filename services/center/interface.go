package center

import "evcare/models"

// CenterService defines service-center discovery and catalogue operations.
type CenterService interface {
	// List returns active centers annotated with open-now state, optionally
	// filtered by a name or address query.
	List(query string) ([]models.CenterSummary, error)
	// Get retrieves a center's full detail.
	Get(centerID string) (*models.ServiceCenter, error)
	// Catalogue returns the service types and packages a center offers.
	Catalogue(centerID string) ([]models.ServiceType, []models.ServicePackage, error)
	// IsOpenNow reports whether the center is open at this moment.
	IsOpenNow(centerID string) (bool, error)
}
