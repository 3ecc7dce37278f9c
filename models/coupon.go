package models

import "time"

// Coupon is a discount code applied to a booking's estimated price at
// confirmation. It never affects the live session meter.
type Coupon struct {
	ID        string    `bson:"id" json:"id"`
	Code      string    `bson:"code" json:"code"`
	Kind      string    `bson:"kind" json:"kind"` // "flat" or "percent"
	Value     float64   `bson:"value" json:"value"`
	Active    bool      `bson:"active" json:"active"`
	ExpiresAt time.Time `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Usable reports whether the coupon can be applied at the given instant.
func (c Coupon) Usable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return false
	}
	return true
}

// Apply returns the price after discount, never below zero.
func (c Coupon) Apply(price float64) float64 {
	var discounted float64
	switch c.Kind {
	case "percent":
		discounted = price * (1 - c.Value/100)
	case "flat":
		discounted = price - c.Value
	default:
		return price
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}
