package billingRepo

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

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo creates a new InvoiceRepository backed by MongoDB.
func NewMongoInvoiceRepo() InvoiceRepository {
	coll := database.MongoClient.Database("dentra").Collection("invoices")
	repo := &MongoInvoiceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create invoice indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoInvoiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "paymentStatus", Value: 1}}},
		{Keys: bson.D{{Key: "dueDate", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new invoice document.
func (r *MongoInvoiceRepo) Create(inv *models.Invoice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing invoice document.
func (r *MongoInvoiceRepo) Update(inv *models.Invoice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	inv.UpdatedAt = time.Now()
	filter := bson.M{"id": inv.ID}
	update := bson.M{"$set": inv}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update invoice with id %s: %w", inv.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an invoice document by its ID.
func (r *MongoInvoiceRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete invoice with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves an invoice by its unique ID.
func (r *MongoInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var inv models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&inv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch invoice with id %s: %w", id, err)
	}
	return &inv, nil
}

// List retrieves a page of invoices matching the filter, newest first,
// together with the total match count.
func (r *MongoInvoiceRepo) List(filter InvoiceFilter, p models.ListParams) ([]models.Invoice, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	p.Normalize()

	query := bson.M{}
	if filter.PatientID != "" {
		query["patientId"] = filter.PatientID
	}
	if filter.ClinicID != "" {
		query["clinicId"] = filter.ClinicID
	}
	if filter.Status != "" {
		query["paymentStatus"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((p.Page - 1) * p.Limit)).
		SetLimit(int64(p.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	for cursor.Next(ctx) {
		var inv models.Invoice
		if err := cursor.Decode(&inv); err != nil {
			return nil, 0, fmt.Errorf("failed to decode invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, nil
}

// AppendPayment pushes a payment and sets the recomputed derived fields in a
// single guarded update. The filter requires the stored balance to still
// cover the amount and the invoice not to be paid, so concurrent payments
// cannot overdraw the balance.
func (r *MongoInvoiceRepo) AppendPayment(invoiceID string, payment models.Payment, update PaymentUpdate) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":            invoiceID,
		"paymentStatus": bson.M{"$ne": models.PaymentStatusPaid},
		"balanceAmount": bson.M{"$gte": payment.Amount},
	}

	set := bson.M{
		"paidAmount":    update.PaidAmount,
		"balanceAmount": update.BalanceAmount,
		"paymentStatus": update.Status,
		"updatedAt":     time.Now(),
	}
	if update.PaidDate != nil {
		set["paidDate"] = update.PaidDate
	}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$push": bson.M{"paymentHistory": payment},
		"$set":  set,
	})
	if err != nil {
		return fmt.Errorf("failed to append payment to invoice %s: %w", invoiceID, err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing invoice from a lost race.
		count, countErr := r.coll.CountDocuments(ctx, bson.M{"id": invoiceID})
		if countErr == nil && count == 0 {
			return ErrNotFound
		}
		return ErrStaleBalance
	}
	return nil
}
