package invoiceRepo

import (
	"context"
	"fmt"
	"time"

	"blissdrive/database"
	"blissdrive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InvoiceRepository defines persistence operations for payment invoices.
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByStudent(studentID string) ([]models.Invoice, error)
	GetAll() ([]models.Invoice, error)
}

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	coll *mongo.Collection
}

func NewMongoInvoiceRepo() InvoiceRepository {
	return &MongoInvoiceRepo{
		coll: database.MongoClient.Database("blissdrive").Collection("invoices"),
	}
}

func (r *MongoInvoiceRepo) Create(invoice *models.Invoice) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, invoice); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *MongoInvoiceRepo) GetByStudent(studentID string) ([]models.Invoice, error) {
	return r.find(bson.M{"student_id": studentID})
}

func (r *MongoInvoiceRepo) GetAll() ([]models.Invoice, error) {
	return r.find(bson.M{})
}

func (r *MongoInvoiceRepo) find(filter bson.M) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("failed to decode invoices: %w", err)
	}
	return invoices, nil
}
