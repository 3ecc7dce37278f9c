package studentRepo

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

// MongoStudentRepo implements StudentRepository using MongoDB.
type MongoStudentRepo struct {
	coll *mongo.Collection
}

// NewMongoStudentRepo creates a new instance of StudentRepository using MongoDB.
func NewMongoStudentRepo() StudentRepository {
	coll := database.MongoClient.Database("blissdrive").Collection("students")
	repo := &MongoStudentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoStudentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "token_hash", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new student document.
func (r *MongoStudentRepo) Create(student *models.Student) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, student)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// Update modifies an existing student document.
func (r *MongoStudentRepo) Update(student *models.Student) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	student.UpdatedAt = time.Now()
	filter := bson.M{"id": student.ID}
	update := bson.M{"$set": student}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update student with id %s: %w", student.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("student with id %s not found", student.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a student document.
func (r *MongoStudentRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": updateDoc}
	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update student with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("student with id %s not found", id)
	}
	return nil
}

// Delete removes a student document by its ID.
func (r *MongoStudentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete student with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("student with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a student by its unique ID.
func (r *MongoStudentRepo) GetByID(id string) (*models.Student, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var student models.Student
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&student); err != nil {
		return nil, fmt.Errorf("failed to fetch student with id %s: %w", id, err)
	}
	return &student, nil
}

// GetByEmail retrieves a student by email. Returns (nil, nil) when absent.
func (r *MongoStudentRepo) GetByEmail(email string) (*models.Student, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var student models.Student
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&student); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch student with email %s: %w", email, err)
	}
	return &student, nil
}

// GetByTokenHash retrieves the student holding the given auth token hash.
func (r *MongoStudentRepo) GetByTokenHash(tokenHash string) (*models.Student, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var student models.Student
	if err := r.coll.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&student); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch student by token hash: %w", err)
	}
	return &student, nil
}

// GetAll retrieves all students.
func (r *MongoStudentRepo) GetAll() ([]models.Student, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students: %w", err)
	}
	defer cursor.Close(ctx)

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("failed to decode students: %w", err)
	}
	return students, nil
}

// AddSavedAddress appends a pickup address to the student's saved list.
func (r *MongoStudentRepo) AddSavedAddress(studentID string, addr models.SavedAddress) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": studentID}
	update := bson.M{
		"$push": bson.M{"saved_addresses": addr},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add saved address for student %s: %w", studentID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("student with id %s not found", studentID)
	}
	return nil
}
