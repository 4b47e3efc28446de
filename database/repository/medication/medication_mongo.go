package medicationRepo

import (
	"context"
	"fmt"
	"time"

	"dentra/database"
	"dentra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMedicationRepo implements MedicationRepository using MongoDB.
type MongoMedicationRepo struct {
	coll *mongo.Collection
}

// NewMongoMedicationRepo creates a new MedicationRepository backed by MongoDB.
func NewMongoMedicationRepo() MedicationRepository {
	coll := database.MongoClient.Database("dentra").Collection("medications")
	repo := &MongoMedicationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create medication indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMedicationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new medication document.
func (r *MongoMedicationRepo) Create(m *models.Medication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

// Update modifies an existing medication document.
func (r *MongoMedicationRepo) Update(m *models.Medication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": m.ID}, bson.M{"$set": m})
	if err != nil {
		return fmt.Errorf("failed to update medication with id %s: %w", m.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a medication document by its ID.
func (r *MongoMedicationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete medication with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a medication by its unique ID.
func (r *MongoMedicationRepo) GetByID(id string) (*models.Medication, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var m models.Medication
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch medication with id %s: %w", id, err)
	}
	return &m, nil
}

// GetByIDs retrieves all medications whose IDs appear in ids.
func (r *MongoMedicationRepo) GetByIDs(ids []string) ([]models.Medication, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medications: %w", err)
	}
	defer cursor.Close(ctx)

	var medications []models.Medication
	for cursor.Next(ctx) {
		var m models.Medication
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode medication: %w", err)
		}
		medications = append(medications, m)
	}
	return medications, nil
}

// Search finds medications whose name or generic name matches the query.
func (r *MongoMedicationRepo) Search(query string, params models.ListParams) ([]models.Medication, int64, error) {
	pattern := primitive.Regex{Pattern: query, Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"genericName": pattern},
	}}
	return r.find(filter, params)
}

// List retrieves a page of medications ordered by name.
func (r *MongoMedicationRepo) List(params models.ListParams) ([]models.Medication, int64, error) {
	return r.find(bson.M{}, params)
}

func (r *MongoMedicationRepo) find(filter bson.M, params models.ListParams) ([]models.Medication, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	params.Normalize()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count medications: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((params.Page - 1) * params.Limit)).
		SetLimit(int64(params.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve medications: %w", err)
	}
	defer cursor.Close(ctx)

	var medications []models.Medication
	for cursor.Next(ctx) {
		var m models.Medication
		if err := cursor.Decode(&m); err != nil {
			return nil, 0, fmt.Errorf("failed to decode medication: %w", err)
		}
		medications = append(medications, m)
	}
	return medications, total, nil
}
