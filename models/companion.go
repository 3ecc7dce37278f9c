package models

import "time"

// Companion is a safety companion / instructor who accompanies lessons.
type Companion struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Phone         string    `bson:"phone" json:"phone"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	LicenseNumber string    `bson:"license_number" json:"licenseNumber"`
	Active        bool      `bson:"active" json:"active"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}
