package prescriptionRepo

import (
	"context"
	"fmt"
	"time"

	"dentra/database"
	"dentra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPrescriptionRepo implements PrescriptionRepository using MongoDB.
type MongoPrescriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoPrescriptionRepo creates a new PrescriptionRepository backed by MongoDB.
func NewMongoPrescriptionRepo() PrescriptionRepository {
	coll := database.MongoClient.Database("dentra").Collection("prescriptions")
	repo := &MongoPrescriptionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create prescription indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPrescriptionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "issuedAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new prescription document.
func (r *MongoPrescriptionRepo) Create(p *models.Prescription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

// Update modifies an existing prescription document.
func (r *MongoPrescriptionRepo) Update(p *models.Prescription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	p.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": p})
	if err != nil {
		return fmt.Errorf("failed to update prescription with id %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a prescription document by its ID.
func (r *MongoPrescriptionRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete prescription with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a prescription by its unique ID.
func (r *MongoPrescriptionRepo) GetByID(id string) (*models.Prescription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Prescription
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch prescription with id %s: %w", id, err)
	}
	return &p, nil
}

// GetByPatient retrieves a page of a patient's prescriptions, newest first.
func (r *MongoPrescriptionRepo) GetByPatient(patientID string, params models.ListParams) ([]models.Prescription, int64, error) {
	return r.find(bson.M{"patientId": patientID}, params)
}

// List retrieves a page of prescriptions, newest first.
func (r *MongoPrescriptionRepo) List(params models.ListParams) ([]models.Prescription, int64, error) {
	return r.find(bson.M{}, params)
}

func (r *MongoPrescriptionRepo) find(filter bson.M, params models.ListParams) ([]models.Prescription, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	params.Normalize()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "issuedAt", Value: -1}}).
		SetSkip(int64((params.Page - 1) * params.Limit)).
		SetLimit(int64(params.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve prescriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var prescriptions []models.Prescription
	for cursor.Next(ctx) {
		var p models.Prescription
		if err := cursor.Decode(&p); err != nil {
			return nil, 0, fmt.Errorf("failed to decode prescription: %w", err)
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, total, nil
}
