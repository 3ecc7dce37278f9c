package models

import "time"

// Student represents a registered customer of the driving school.
type Student struct {
	ID             string         `bson:"id" json:"id"`
	Name           string         `bson:"name" json:"name"`
	Email          string         `bson:"email" json:"email"`
	Phone          string         `bson:"phone" json:"phone"`
	PasswordHash   string         `bson:"password_hash" json:"-"`
	TokenHash      string         `bson:"token_hash,omitempty" json:"-"`
	SavedAddresses []SavedAddress `bson:"saved_addresses,omitempty" json:"savedAddresses,omitempty"`
	Notifications  []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`
	LicenseNumber  string         `bson:"license_number,omitempty" json:"licenseNumber,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updatedAt"`
}

// SavedAddress is a pickup location the student has used before.
type SavedAddress struct {
	ID      string `bson:"id" json:"id"`
	Label   string `bson:"label" json:"label"` // e.g., "Home", "Work"
	Address string `bson:"address" json:"address"`
}

// Notification is an in-app message delivered to a student.
type Notification struct {
	ID        string                 `bson:"id" json:"id"`
	Type      string                 `bson:"type" json:"type"`
	Message   string                 `bson:"message" json:"message"`
	Data      map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
	Read      bool                   `bson:"read" json:"read"`
}

// StudentRegistration is the payload accepted by the register endpoint.
type StudentRegistration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}
