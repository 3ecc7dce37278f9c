package companionRepo

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

// CompanionRepository defines persistence operations for safety companions.
type CompanionRepository interface {
	Create(companion *models.Companion) error
	Update(companion *models.Companion) error
	Delete(id string) error
	GetByID(id string) (*models.Companion, error)
	GetAll() ([]models.Companion, error)
	GetActive() ([]models.Companion, error)
}

// MongoCompanionRepo implements CompanionRepository using MongoDB.
type MongoCompanionRepo struct {
	coll *mongo.Collection
}

func NewMongoCompanionRepo() CompanionRepository {
	coll := database.MongoClient.Database("blissdrive").Collection("companions")
	repo := &MongoCompanionRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create companion indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCompanionRepo) Create(companion *models.Companion) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	companion.CreatedAt = now
	companion.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, companion); err != nil {
		return fmt.Errorf("failed to create companion: %w", err)
	}
	return nil
}

func (r *MongoCompanionRepo) Update(companion *models.Companion) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	companion.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": companion.ID}, bson.M{"$set": companion})
	if err != nil {
		return fmt.Errorf("failed to update companion with id %s: %w", companion.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("companion with id %s not found", companion.ID)
	}
	return nil
}

func (r *MongoCompanionRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete companion with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("companion with id %s not found", id)
	}
	return nil
}

func (r *MongoCompanionRepo) GetByID(id string) (*models.Companion, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var companion models.Companion
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&companion); err != nil {
		return nil, fmt.Errorf("failed to fetch companion with id %s: %w", id, err)
	}
	return &companion, nil
}

func (r *MongoCompanionRepo) GetAll() ([]models.Companion, error) {
	return r.find(bson.M{})
}

func (r *MongoCompanionRepo) GetActive() ([]models.Companion, error) {
	return r.find(bson.M{"active": true})
}

func (r *MongoCompanionRepo) find(filter bson.M) ([]models.Companion, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companions: %w", err)
	}
	defer cursor.Close(ctx)

	var companions []models.Companion
	if err := cursor.All(ctx, &companions); err != nil {
		return nil, fmt.Errorf("failed to decode companions: %w", err)
	}
	return companions, nil
}
