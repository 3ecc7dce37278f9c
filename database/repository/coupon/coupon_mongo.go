package couponRepo

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

// CouponRepository defines persistence operations for discount coupons.
type CouponRepository interface {
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id string) error
	GetByCode(code string) (*models.Coupon, error)
	GetAll() ([]models.Coupon, error)
}

// MongoCouponRepo implements CouponRepository using MongoDB.
type MongoCouponRepo struct {
	coll *mongo.Collection
}

func NewMongoCouponRepo() CouponRepository {
	coll := database.MongoClient.Database("blissdrive").Collection("coupons")
	repo := &MongoCouponRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create coupon indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCouponRepo) Create(coupon *models.Coupon) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, coupon); err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *MongoCouponRepo) Update(coupon *models.Coupon) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coupon.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": coupon.ID}, bson.M{"$set": coupon})
	if err != nil {
		return fmt.Errorf("failed to update coupon with id %s: %w", coupon.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("coupon with id %s not found", coupon.ID)
	}
	return nil
}

func (r *MongoCouponRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coupon with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("coupon with id %s not found", id)
	}
	return nil
}

// GetByCode retrieves a coupon by its code. Returns (nil, nil) when absent.
func (r *MongoCouponRepo) GetByCode(code string) (*models.Coupon, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var coupon models.Coupon
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&coupon); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch coupon %s: %w", code, err)
	}
	return &coupon, nil
}

func (r *MongoCouponRepo) GetAll() ([]models.Coupon, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}
	return coupons, nil
}
