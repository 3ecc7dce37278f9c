package reviewRepo

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

// ReviewRepository defines persistence operations for session reviews.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetBySession(sessionID string) (*models.Review, error)
	GetByCompanion(companionID string) ([]models.Review, error)
}

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

func NewMongoReviewRepo() ReviewRepository {
	return &MongoReviewRepo{
		coll: database.MongoClient.Database("blissdrive").Collection("reviews"),
	}
}

func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	review.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetBySession retrieves the review for one session. Returns (nil, nil) when absent.
func (r *MongoReviewRepo) GetBySession(sessionID string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review for session %s: %w", sessionID, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) GetByCompanion(companionID string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"companion_id": companionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for companion %s: %w", companionID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
