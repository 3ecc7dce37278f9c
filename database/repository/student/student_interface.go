package studentRepo

import (
	"blissdrive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	Create(student *models.Student) error
	Update(student *models.Student) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Student, error)
	GetByEmail(email string) (*models.Student, error)
	GetByTokenHash(tokenHash string) (*models.Student, error)
	GetAll() ([]models.Student, error)
	AddSavedAddress(studentID string, addr models.SavedAddress) error
}
