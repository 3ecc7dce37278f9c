package booking

import (
	"context"

	"blissdrive/models"
)

// SelectionUpdate carries the step-1 choices of the wizard. Any change to
// date, duration or companion regenerates the slot list and clears the
// previously selected slot.
type SelectionUpdate struct {
	LessonType      models.LessonType `json:"lessonType"`
	Date            string            `json:"date"`
	DurationMinutes int               `json:"durationMinutes"`
	CompanionID     string            `json:"companionId"`
}

// WizardService drives the 3-step booking wizard. Transitions are strictly
// linear; backward moves never clear already-entered data.
type WizardService interface {
	StartDraft(ctx context.Context, studentID string) (*models.BookingDraft, error)
	GetDraft(ctx context.Context, draftID string) (*models.BookingDraft, error)
	UpdateSelection(ctx context.Context, draftID string, sel SelectionUpdate) (*models.BookingDraft, error)
	SelectSlot(ctx context.Context, draftID, slotID string) (*models.BookingDraft, error)
	AcceptTerms(ctx context.Context, draftID string, accepted bool) (*models.BookingDraft, error)
	SetPickup(ctx context.Context, draftID, addressID, address string) (*models.BookingDraft, error)
	ApplyCoupon(ctx context.Context, draftID, code string) (*models.BookingDraft, error)
	Advance(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Back(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Submit(ctx context.Context, draftID string) (*models.Booking, error)
	Cancel(ctx context.Context, draftID string) error
}

// ReminderScheduler enqueues a lesson reminder for a confirmed booking.
// Implemented by the async worker package; failures are logged, not fatal.
type ReminderScheduler interface {
	Schedule(booking models.Booking) error
}
