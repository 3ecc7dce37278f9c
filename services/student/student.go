package student

import (
	"errors"
	"fmt"
	"time"

	studentRepo "blissdrive/database/repository/student"
	"blissdrive/models"
	"blissdrive/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthResponse contains the student's ID and session token.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// StudentService manages registration, authentication and profile data.
type StudentService interface {
	Register(reg models.StudentRegistration) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetByID(studentID string) (*models.Student, error)
	Update(student models.Student) (*models.Student, error)
	Delete(studentID string) error
	RevokeAuthToken(studentID string) error
	AddSavedAddress(studentID, label, address string) (*models.Student, error)
	GetAll() ([]models.Student, error)
}

// DefaultStudentService is the production implementation.
type DefaultStudentService struct {
	Repo studentRepo.StudentRepository
}

const tokenDuration = 72 * time.Hour

// Register creates a student account and signs them in.
func (s *DefaultStudentService) Register(reg models.StudentRegistration) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(reg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	stu := &models.Student{
		ID:           uuid.New().String(),
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(stu); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return s.issueToken(stu)
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultStudentService) Authenticate(email, password string) (*AuthResponse, error) {
	stu, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if stu == nil {
		return nil, errors.New("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stu.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}
	return s.issueToken(stu)
}

func (s *DefaultStudentService) issueToken(stu *models.Student) (*AuthResponse, error) {
	token, err := utils.GenerateToken(stu.ID, stu.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.UpdateSetDocument(stu.ID, map[string]interface{}{
		"token_hash": utils.HashToken(token),
	}); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}
	return &AuthResponse{ID: stu.ID, Token: token, Name: stu.Name, Email: stu.Email}, nil
}

func (s *DefaultStudentService) GetByID(studentID string) (*models.Student, error) {
	return s.Repo.GetByID(studentID)
}

func (s *DefaultStudentService) Update(student models.Student) (*models.Student, error) {
	if err := s.Repo.Update(&student); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(student.ID)
}

func (s *DefaultStudentService) Delete(studentID string) error {
	return s.Repo.Delete(studentID)
}

// RevokeAuthToken signs the student out everywhere.
func (s *DefaultStudentService) RevokeAuthToken(studentID string) error {
	return s.Repo.UpdateSetDocument(studentID, map[string]interface{}{"token_hash": ""})
}

// AddSavedAddress stores a pickup address for reuse in the booking wizard.
func (s *DefaultStudentService) AddSavedAddress(studentID, label, address string) (*models.Student, error) {
	if address == "" {
		return nil, errors.New("address must not be empty")
	}
	addr := models.SavedAddress{
		ID:      uuid.New().String(),
		Label:   label,
		Address: address,
	}
	if err := s.Repo.AddSavedAddress(studentID, addr); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(studentID)
}

func (s *DefaultStudentService) GetAll() ([]models.Student, error) {
	return s.Repo.GetAll()
}
