package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "serviceCenterId", Value: 1}, {Key: "appointmentDate", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoBookingRepo) findSorted(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// GetByUser retrieves a user's appointments, newest first.
func (r *MongoBookingRepo) GetByUser(userID string) ([]models.Appointment, error) {
	return r.findSorted(bson.M{"userId": userID})
}

// GetByCenter retrieves a center's appointments, newest first.
func (r *MongoBookingRepo) GetByCenter(centerID string) ([]models.Appointment, error) {
	return r.findSorted(bson.M{"serviceCenterId": centerID})
}

// Create inserts a new appointment document.
func (r *MongoBookingRepo) Create(appointment *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// Update modifies an existing appointment document.
func (r *MongoBookingRepo) Update(appointment *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	appointment.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": appointment.ID}, bson.M{"$set": appointment})
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", appointment.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", appointment.ID)
	}
	return nil
}

// UpdateStatus sets the appointment and payment status fields.
func (r *MongoBookingRepo) UpdateStatus(id, status, paymentStatus string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":        status,
		"paymentStatus": paymentStatus,
		"updatedAt":     time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment status for %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

// CountByStatus returns counts of appointments grouped by status.
func (r *MongoBookingRepo) CountByStatus() (map[string]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate appointment statuses: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode status count: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountByCenter returns counts of non-cancelled appointments grouped by
// service center.
func (r *MongoBookingRepo) CountByCenter() (map[string]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": models.AppointmentCancelled}}}},
		{{Key: "$group", Value: bson.M{"_id": "$serviceCenterId", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate center load: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			CenterID string `bson:"_id"`
			Count    int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode center load: %w", err)
		}
		counts[row.CenterID] = row.Count
	}
	return counts, nil
}

// CountBookedAt returns non-cancelled appointments for a center slot.
func (r *MongoBookingRepo) CountBookedAt(centerID, date, startTime string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"serviceCenterId": centerID,
		"appointmentDate": date,
		"appointmentTime": startTime,
		"status":          bson.M{"$ne": models.AppointmentCancelled},
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for center %s at %s %s: %w", centerID, date, startTime, err)
	}
	return n, nil
}

// GetUpcoming retrieves confirmed appointments on the given date.
func (r *MongoBookingRepo) GetUpcoming(date string) ([]models.Appointment, error) {
	return r.findSorted(bson.M{
		"appointmentDate": date,
		"status":          models.AppointmentConfirmed,
	})
}
