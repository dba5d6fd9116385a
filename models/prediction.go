package models

import "time"

// PredictionItem is one part's forecast within an inventory prediction.
type PredictionItem struct {
	PartName         string  `bson:"partName" json:"partName"`
	CurrentStock     int     `bson:"currentStock" json:"currentStock"`
	PredictedDemand  int     `bson:"predictedDemand" json:"predictedDemand"`
	RecommendedOrder int     `bson:"recommendedOrder" json:"recommendedOrder"`
	Confidence       float64 `bson:"confidence" json:"confidence"`
}

// InventoryPrediction is an AI-generated parts-demand forecast for a center.
type InventoryPrediction struct {
	ID          string           `bson:"id" json:"id"`
	CenterID    string           `bson:"centerId" json:"centerId"`
	Model       string           `bson:"model" json:"model"`
	HorizonDays int              `bson:"horizonDays" json:"horizonDays"`
	Items       []PredictionItem `bson:"items" json:"items"`
	Summary     string           `bson:"summary" json:"summary"`
	GeneratedAt time.Time        `bson:"generatedAt" json:"generatedAt"`
}

// PredictionStats aggregates a center's prediction history.
type PredictionStats struct {
	CenterID        string    `json:"centerId"`
	TotalRuns       int       `json:"totalRuns"`
	LastGeneratedAt time.Time `json:"lastGeneratedAt"`
	AvgConfidence   float64   `json:"avgConfidence"`
}
