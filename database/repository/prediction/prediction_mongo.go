package predictionRepo

import (
	"context"
	"fmt"
	"time"

	"evcare/database"
	"evcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPredictionRepo implements PredictionRepository using MongoDB.
type MongoPredictionRepo struct {
	coll *mongo.Collection
}

// NewMongoPredictionRepo creates a new instance of PredictionRepository using MongoDB.
func NewMongoPredictionRepo() PredictionRepository {
	repo := &MongoPredictionRepo{coll: database.Collection("inventory_predictions")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPredictionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "centerId", Value: 1}, {Key: "generatedAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("failed to create prediction indexes: %w", err)
	}
	return nil
}

// Create inserts a new prediction document.
func (r *MongoPredictionRepo) Create(prediction *models.InventoryPrediction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, prediction); err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}
	return nil
}

// GetLatest retrieves the newest prediction for a center.
func (r *MongoPredictionRepo) GetLatest(centerID string) (*models.InventoryPrediction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "generatedAt", Value: -1}})
	var p models.InventoryPrediction
	err := r.coll.FindOne(ctx, bson.M{"centerId": centerID}, opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest prediction for center %s: %w", centerID, err)
	}
	return &p, nil
}

// GetHistory retrieves a center's predictions, newest first.
func (r *MongoPredictionRepo) GetHistory(centerID string, limit int64) ([]models.InventoryPrediction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "generatedAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"centerId": centerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve predictions for center %s: %w", centerID, err)
	}
	defer cursor.Close(ctx)

	var predictions []models.InventoryPrediction
	for cursor.Next(ctx) {
		var p models.InventoryPrediction
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}

// GetStats aggregates a center's prediction history.
func (r *MongoPredictionRepo) GetStats(centerID string) (*models.PredictionStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"centerId": centerID}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"runs":          bson.M{"$addToSet": "$id"},
			"last":          bson.M{"$max": "$generatedAt"},
			"avgConfidence": bson.M{"$avg": "$items.confidence"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate prediction stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &models.PredictionStats{CenterID: centerID}
	if cursor.Next(ctx) {
		var row struct {
			Runs          []string  `bson:"runs"`
			Last          time.Time `bson:"last"`
			AvgConfidence float64   `bson:"avgConfidence"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode prediction stats: %w", err)
		}
		stats.TotalRuns = len(row.Runs)
		stats.LastGeneratedAt = row.Last
		stats.AvgConfidence = row.AvgConfidence
	}
	return stats, nil
}
