package centerRepo

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

// MongoCenterRepo implements CenterRepository using MongoDB.
type MongoCenterRepo struct {
	centers   *mongo.Collection
	services  *mongo.Collection
	packages  *mongo.Collection
	schedules *mongo.Collection
}

// NewMongoCenterRepo creates a new instance of CenterRepository using MongoDB.
func NewMongoCenterRepo() CenterRepository {
	repo := &MongoCenterRepo{
		centers:   database.Collection("service_centers"),
		services:  database.Collection("service_types"),
		packages:  database.Collection("service_packages"),
		schedules: database.Collection("day_schedules"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCenterRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.centers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create center indexes: %w", err)
	}
	if _, err := r.schedules.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "centerId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a service center by its unique ID.
func (r *MongoCenterRepo) GetByID(id string) (*models.ServiceCenter, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var center models.ServiceCenter
	if err := r.centers.FindOne(ctx, bson.M{"id": id}).Decode(&center); err != nil {
		return nil, fmt.Errorf("failed to fetch center with id %s: %w", id, err)
	}
	return &center, nil
}

// GetAllActive retrieves all active centers.
func (r *MongoCenterRepo) GetAllActive() ([]models.ServiceCenter, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.centers.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve centers: %w", err)
	}
	defer cursor.Close(ctx)

	var centers []models.ServiceCenter
	for cursor.Next(ctx) {
		var c models.ServiceCenter
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode center: %w", err)
		}
		centers = append(centers, c)
	}
	return centers, nil
}

// SearchActive retrieves active centers whose name or address matches the
// query, case-insensitively.
func (r *MongoCenterRepo) SearchActive(query string) ([]models.ServiceCenter, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pattern := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{
		"active": true,
		"$or": []bson.M{
			{"name": pattern},
			{"address": pattern},
		},
	}
	cursor, err := r.centers.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search centers: %w", err)
	}
	defer cursor.Close(ctx)

	var centers []models.ServiceCenter
	for cursor.Next(ctx) {
		var c models.ServiceCenter
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode center: %w", err)
		}
		centers = append(centers, c)
	}
	return centers, nil
}

// Create inserts a new center document.
func (r *MongoCenterRepo) Create(center *models.ServiceCenter) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	center.CreatedAt = now
	center.UpdatedAt = now

	if _, err := r.centers.InsertOne(ctx, center); err != nil {
		return fmt.Errorf("failed to create center: %w", err)
	}
	return nil
}

// Update modifies an existing center document.
func (r *MongoCenterRepo) Update(center *models.ServiceCenter) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	center.UpdatedAt = time.Now()
	result, err := r.centers.UpdateOne(ctx, bson.M{"id": center.ID}, bson.M{"$set": center})
	if err != nil {
		return fmt.Errorf("failed to update center with id %s: %w", center.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("center with id %s not found", center.ID)
	}
	return nil
}

// Delete removes a center document by its ID.
func (r *MongoCenterRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.centers.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete center with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("center with id %s not found", id)
	}
	return nil
}

// GetServiceType retrieves a service type by ID.
func (r *MongoCenterRepo) GetServiceType(id string) (*models.ServiceType, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var st models.ServiceType
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&st); err != nil {
		return nil, fmt.Errorf("failed to fetch service type %s: %w", id, err)
	}
	return &st, nil
}

// GetServiceTypes retrieves service types by their IDs.
func (r *MongoCenterRepo) GetServiceTypes(ids []string) ([]models.ServiceType, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve service types: %w", err)
	}
	defer cursor.Close(ctx)

	var types []models.ServiceType
	for cursor.Next(ctx) {
		var st models.ServiceType
		if err := cursor.Decode(&st); err != nil {
			return nil, fmt.Errorf("failed to decode service type: %w", err)
		}
		types = append(types, st)
	}
	return types, nil
}

// GetServicePackage retrieves a service package by ID.
func (r *MongoCenterRepo) GetServicePackage(id string) (*models.ServicePackage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var pkg models.ServicePackage
	if err := r.packages.FindOne(ctx, bson.M{"id": id}).Decode(&pkg); err != nil {
		return nil, fmt.Errorf("failed to fetch service package %s: %w", id, err)
	}
	return &pkg, nil
}

// GetServicePackages retrieves packages by their IDs.
func (r *MongoCenterRepo) GetServicePackages(ids []string) ([]models.ServicePackage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.packages.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve service packages: %w", err)
	}
	defer cursor.Close(ctx)

	var pkgs []models.ServicePackage
	for cursor.Next(ctx) {
		var pkg models.ServicePackage
		if err := cursor.Decode(&pkg); err != nil {
			return nil, fmt.Errorf("failed to decode service package: %w", err)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// GetDaySchedule retrieves the configured slots for a center on a date.
func (r *MongoCenterRepo) GetDaySchedule(centerID, date string) (*models.DaySchedule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var schedule models.DaySchedule
	err := r.schedules.FindOne(ctx, bson.M{"centerId": centerID, "date": date}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch schedule for center %s on %s: %w", centerID, date, err)
	}
	return &schedule, nil
}

// UpsertDaySchedule stores the slots for a center on a date.
func (r *MongoCenterRepo) UpsertDaySchedule(schedule *models.DaySchedule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"centerId": schedule.CenterID, "date": schedule.Date}
	update := bson.M{"$set": schedule}
	opts := options.Update().SetUpsert(true)
	if _, err := r.schedules.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert schedule for center %s on %s: %w", schedule.CenterID, schedule.Date, err)
	}
	return nil
}
