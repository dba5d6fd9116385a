// Package intelligence produces AI inventory predictions for service
// centers, forecasting spare-part demand from recent appointment activity.
package intelligence

import "evcare/models"

// PredictionService defines inventory-forecast operations.
type PredictionService interface {
	// GetLatest returns the newest prediction for a center, generating one
	// when none exists yet.
	GetLatest(centerID string) (*models.InventoryPrediction, error)
	// Regenerate forces a fresh prediction run for a center.
	Regenerate(centerID string, horizonDays int) (*models.InventoryPrediction, error)
	// GetHistory lists a center's past predictions, newest first.
	GetHistory(centerID string, limit int64) ([]models.InventoryPrediction, error)
	// GetStats aggregates a center's prediction history.
	GetStats(centerID string) (*models.PredictionStats, error)
}
