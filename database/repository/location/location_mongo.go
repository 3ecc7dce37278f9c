package locationRepo

import (
	"context"
	"fmt"
	"time"

	"blissdrive/database"
	"blissdrive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LocationRepository defines persistence operations for pickup locations.
type LocationRepository interface {
	Create(location *models.Location) error
	Update(location *models.Location) error
	Delete(id string) error
	GetAll() ([]models.Location, error)
}

// MongoLocationRepo implements LocationRepository using MongoDB.
type MongoLocationRepo struct {
	coll *mongo.Collection
}

func NewMongoLocationRepo() LocationRepository {
	return &MongoLocationRepo{
		coll: database.MongoClient.Database("blissdrive").Collection("locations"),
	}
}

func (r *MongoLocationRepo) Create(location *models.Location) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, location); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *MongoLocationRepo) Update(location *models.Location) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	location.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": location.ID}, bson.M{"$set": location})
	if err != nil {
		return fmt.Errorf("failed to update location with id %s: %w", location.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("location with id %s not found", location.ID)
	}
	return nil
}

func (r *MongoLocationRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete location with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("location with id %s not found", id)
	}
	return nil
}

func (r *MongoLocationRepo) GetAll() ([]models.Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locations, nil
}
