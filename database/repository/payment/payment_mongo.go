package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	repo := &MongoPaymentRepo{coll: database.Collection("payments")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "paymentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "orderCode", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiresAt", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its payment ID.
func (r *MongoPaymentRepo) GetByID(paymentID string) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"paymentId": paymentID}).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to fetch payment %s: %w", paymentID, err)
	}
	return &p, nil
}

// GetByOrderCode retrieves a payment by its PayOS order code.
func (r *MongoPaymentRepo) GetByOrderCode(orderCode int64) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"orderCode": orderCode}).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to fetch payment with order code %d: %w", orderCode, err)
	}
	return &p, nil
}

// Create inserts a new payment document.
func (r *MongoPaymentRepo) Create(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// UpdateStatus sets a payment's status, stamping paidAt for paid.
func (r *MongoPaymentRepo) UpdateStatus(paymentID, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": status, "updatedAt": time.Now()}
	if status == models.PaymentStatusPaid {
		set["paidAt"] = time.Now()
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"paymentId": paymentID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", paymentID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment %s not found", paymentID)
	}
	return nil
}

// GetPendingExpiredBefore returns pending payments whose expiry has passed.
func (r *MongoPaymentRepo) GetPendingExpiredBefore(cutoff int64) ([]models.Payment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.PaymentStatusPending,
		"expiresAt": bson.M{"$lt": time.Unix(cutoff, 0)},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve expired payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	for cursor.Next(ctx) {
		var p models.Payment
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// SumPaidAmounts returns the total amount across paid payments.
func (r *MongoPaymentRepo) SumPaidAmounts() (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.PaymentStatusPaid}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate paid amounts: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Total int64 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, fmt.Errorf("failed to decode paid total: %w", err)
		}
		return row.Total, nil
	}
	return 0, nil
}

// SumPaidAmountsByMonth returns paid totals grouped by calendar month of the
// payment date, for payments made on or after the cutoff. Keys are "YYYY-MM".
func (r *MongoPaymentRepo) SumPaidAmountsByMonth(since time.Time) (map[string]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": models.PaymentStatusPaid,
			"paidAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$paidAt"}},
			"total": bson.M{"$sum": "$amount"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	defer cursor.Close(ctx)

	totals := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Month string `bson:"_id"`
			Total int64  `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode monthly revenue: %w", err)
		}
		totals[row.Month] = row.Total
	}
	return totals, nil
}
