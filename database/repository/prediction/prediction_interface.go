package predictionRepo

import "evcare/models"

// PredictionRepository defines data access for AI inventory predictions.
type PredictionRepository interface {
	// Create inserts a new prediction record.
	Create(prediction *models.InventoryPrediction) error
	// GetLatest retrieves the newest prediction for a center; nil when none.
	GetLatest(centerID string) (*models.InventoryPrediction, error)
	// GetHistory retrieves a center's predictions, newest first, capped at limit.
	GetHistory(centerID string, limit int64) ([]models.InventoryPrediction, error)
	// GetStats aggregates a center's prediction history.
	GetStats(centerID string) (*models.PredictionStats, error)
}
