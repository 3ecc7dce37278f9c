package models

import "time"

// Wizard steps for the booking draft. Transitions are strictly linear:
// forward only when the step's guard is satisfied, backward always allowed.
const (
	StepSelectTypeAndSlot = 1
	StepPickupLocation    = 2
	StepConfirmBooking    = 3
)

// BookingDraft is the transient aggregate assembled across the 3-step booking
// wizard. It lives in the draft cache for the lifetime of the wizard and is
// handed off to the booking repository on confirm, then discarded.
type BookingDraft struct {
	DraftID         string     `json:"draftId"`
	StudentID       string     `json:"studentId"`
	Step            int        `json:"step"`
	LessonType      LessonType `json:"lessonType,omitempty"`
	Date            string     `json:"date,omitempty"` // "2006-01-02"
	DurationMinutes int        `json:"durationMinutes,omitempty"`
	SelectedSlotID  string     `json:"selectedSlotId,omitempty"`
	TermsAccepted   bool       `json:"termsAccepted"`
	PickupAddressID string     `json:"pickupAddressId,omitempty"`
	PickupAddress   string     `json:"pickupAddress,omitempty"`
	CompanionID     string     `json:"companionId,omitempty"`
	CouponCode      string     `json:"couponCode,omitempty"`
	EstimatedPrice  float64    `json:"estimatedPrice,omitempty"`
	// Slots generated for the current (date, duration) pair, keyed by slot ID.
	// Regenerated whenever date or duration changes.
	Slots map[string]TimeSlot `json:"slots,omitempty"`
	// Submitting locks the draft against slot/date changes while a
	// confirmation is in flight.
	Submitting bool `json:"submitting"`
}

// Booking represents a confirmed booking record.
type Booking struct {
	ID              string     `bson:"id" json:"id"`
	StudentID       string     `bson:"student_id" json:"studentId"`
	CompanionID     string     `bson:"companion_id,omitempty" json:"companionId,omitempty"`
	LessonType      LessonType `bson:"lesson_type" json:"lessonType"`
	Date            string     `bson:"date" json:"date"`
	SlotID          string     `bson:"slot_id" json:"slotId"`
	Start           int        `bson:"start" json:"start"` // minutes from midnight
	End             int        `bson:"end" json:"end"`
	DurationMinutes int        `bson:"duration_minutes" json:"durationMinutes"`
	PickupAddress   string     `bson:"pickup_address" json:"pickupAddress"`
	CouponCode      string     `bson:"coupon_code,omitempty" json:"couponCode,omitempty"`
	EstimatedPrice  float64    `bson:"estimated_price" json:"estimatedPrice"`
	Status          string     `bson:"status" json:"status"` // "pending", "approved", "completed", "cancelled"
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
}
