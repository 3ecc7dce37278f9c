package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "blissdrive/database/repository/booking"
	couponRepo "blissdrive/database/repository/coupon"
	studentRepo "blissdrive/database/repository/student"
	"blissdrive/models"
	"blissdrive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWizardService implements WizardService. Drafts live in the
// DraftStore for the lifetime of the wizard; on submit the assembled draft is
// handed to the booking repository and discarded.
type DefaultWizardService struct {
	Store     DraftStore
	Slots     *SlotGenerator
	Coupons   couponRepo.CouponRepository
	Bookings  bookingRepo.BookingRepository
	Students  studentRepo.StudentRepository
	Reminders ReminderScheduler
}

// StartDraft opens a fresh draft at step 1.
func (s *DefaultWizardService) StartDraft(ctx context.Context, studentID string) (*models.BookingDraft, error) {
	if studentID == "" {
		return nil, NewInvalidSelectionError("missing student ID")
	}
	draft := &models.BookingDraft{
		DraftID:   uuid.New().String(),
		StudentID: studentID,
		Step:      models.StepSelectTypeAndSlot,
	}
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft loads an existing draft.
func (s *DefaultWizardService) GetDraft(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	return s.Store.Get(ctx, draftID)
}

// UpdateSelection records the step-1 choices and regenerates the slot list.
// The previously selected slot is cleared: its identity may no longer exist
// for the new (date, duration) pair.
func (s *DefaultWizardService) UpdateSelection(ctx context.Context, draftID string, sel SelectionUpdate) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Submitting {
		return nil, NewDraftLockedError("submission in flight; slot and date changes are blocked")
	}
	if !sel.LessonType.Valid() {
		return nil, NewInvalidSelectionError(fmt.Sprintf("unknown lesson type %q", sel.LessonType))
	}

	slots, err := s.Slots.Generate(sel.Date, sel.DurationMinutes, sel.CompanionID)
	if err != nil {
		return nil, err
	}

	draft.LessonType = sel.LessonType
	draft.Date = sel.Date
	draft.DurationMinutes = sel.DurationMinutes
	draft.CompanionID = sel.CompanionID
	draft.SelectedSlotID = ""
	draft.Slots = make(map[string]models.TimeSlot, len(slots))
	for _, slot := range slots {
		draft.Slots[slot.ID] = slot
	}

	estimate, err := EstimatePrice(sel.LessonType, sel.DurationMinutes)
	if err != nil {
		return nil, NewInvalidSelectionError(err.Error())
	}
	draft.EstimatedPrice = estimate

	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SelectSlot records the chosen slot. Slots flagged unavailable are rejected
// at this boundary; the selection never reaches the draft.
func (s *DefaultWizardService) SelectSlot(ctx context.Context, draftID, slotID string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Submitting {
		return nil, NewDraftLockedError("submission in flight; slot and date changes are blocked")
	}
	slot, ok := draft.Slots[slotID]
	if !ok {
		return nil, NewInvalidSelectionError(fmt.Sprintf("slot %s is not among the generated candidates", slotID))
	}
	if !slot.Available {
		return nil, NewSlotUnavailableError(fmt.Sprintf("slot %s is not available", slotID))
	}
	draft.SelectedSlotID = slotID
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AcceptTerms records the terms checkbox.
func (s *DefaultWizardService) AcceptTerms(ctx context.Context, draftID string, accepted bool) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	draft.TermsAccepted = accepted
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetPickup records the step-2 pickup location: either a saved-address ID or
// a free-form address string.
func (s *DefaultWizardService) SetPickup(ctx context.Context, draftID, addressID, address string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	address = strings.TrimSpace(address)
	if addressID != "" {
		resolved, err := s.resolveSavedAddress(draft.StudentID, addressID)
		if err != nil {
			return nil, err
		}
		draft.PickupAddressID = addressID
		draft.PickupAddress = resolved
	} else {
		if address == "" {
			return nil, NewInvalidSelectionError("pickup address must not be empty")
		}
		draft.PickupAddressID = ""
		draft.PickupAddress = address
	}

	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DefaultWizardService) resolveSavedAddress(studentID, addressID string) (string, error) {
	student, err := s.Students.GetByID(studentID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve saved address: %w", err)
	}
	for _, addr := range student.SavedAddresses {
		if addr.ID == addressID {
			return addr.Address, nil
		}
	}
	return "", NewInvalidSelectionError(fmt.Sprintf("saved address %s not found", addressID))
}

// ApplyCoupon validates and attaches a coupon code, recomputing the estimate.
func (s *DefaultWizardService) ApplyCoupon(ctx context.Context, draftID, code string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	coupon, err := s.Coupons.GetByCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil || !coupon.Usable(time.Now()) {
		return nil, NewInvalidSelectionError(fmt.Sprintf("coupon %q is not valid", code))
	}
	draft.CouponCode = coupon.Code
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Advance moves the wizard forward one step, enforcing the step's guard.
func (s *DefaultWizardService) Advance(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	switch draft.Step {
	case models.StepSelectTypeAndSlot:
		if err := s.guardStepOne(draft); err != nil {
			return nil, err
		}
		draft.Step = models.StepPickupLocation
	case models.StepPickupLocation:
		if strings.TrimSpace(draft.PickupAddress) == "" {
			return nil, NewInvalidSelectionError("a pickup location is required before continuing")
		}
		draft.Step = models.StepConfirmBooking
	default:
		return nil, NewInvalidSelectionError("already at the confirmation step")
	}

	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DefaultWizardService) guardStepOne(draft *models.BookingDraft) error {
	if !draft.LessonType.Valid() {
		return NewInvalidSelectionError("a lesson type is required")
	}
	if draft.Date == "" {
		return NewInvalidSelectionError("a date is required")
	}
	if !ValidDuration(draft.DurationMinutes) {
		return NewInvalidSelectionError("a lesson duration is required")
	}
	slot, ok := draft.Slots[draft.SelectedSlotID]
	if draft.SelectedSlotID == "" || !ok {
		return NewInvalidSelectionError("a time slot is required")
	}
	if !slot.Available {
		return NewSlotUnavailableError(fmt.Sprintf("slot %s is not available", slot.ID))
	}
	if !draft.TermsAccepted {
		return NewInvalidSelectionError("terms must be accepted before continuing")
	}
	return nil
}

// Back moves the wizard one step back. Entered data is kept so the student
// can navigate back and forth without losing selections.
func (s *DefaultWizardService) Back(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Step > models.StepSelectTypeAndSlot {
		draft.Step--
		if err := s.Store.Save(ctx, draft); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

// Submit hands the assembled draft to the booking repository. On failure the
// draft is retained so the student can retry without re-entering all steps.
func (s *DefaultWizardService) Submit(ctx context.Context, draftID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	draft, err := s.Store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Step != models.StepConfirmBooking {
		return nil, NewInvalidSelectionError("the wizard has not reached the confirmation step")
	}
	if draft.Submitting {
		return nil, NewDraftLockedError("a submission is already in flight")
	}

	// Re-check the accumulated guards; the draft may have been mutated by
	// backward navigation since the last forward pass.
	if err := s.guardStepOne(draft); err != nil {
		return nil, err
	}
	if strings.TrimSpace(draft.PickupAddress) == "" {
		return nil, NewInvalidSelectionError("a pickup location is required")
	}

	price := draft.EstimatedPrice
	if draft.CouponCode != "" {
		coupon, err := s.Coupons.GetByCode(draft.CouponCode)
		if err != nil {
			return nil, fmt.Errorf("failed to look up coupon: %w", err)
		}
		if coupon != nil && coupon.Usable(time.Now()) {
			price = coupon.Apply(price)
		}
	}

	draft.Submitting = true
	if err := s.Store.Save(ctx, draft); err != nil {
		return nil, err
	}

	slot := draft.Slots[draft.SelectedSlotID]
	record := models.Booking{
		ID:              uuid.New().String(),
		StudentID:       draft.StudentID,
		CompanionID:     draft.CompanionID,
		LessonType:      draft.LessonType,
		Date:            draft.Date,
		SlotID:          slot.ID,
		Start:           slot.Start,
		End:             slot.End,
		DurationMinutes: draft.DurationMinutes,
		PickupAddress:   draft.PickupAddress,
		CouponCode:      draft.CouponCode,
		EstimatedPrice:  utils.Round2(price),
		Status:          "pending",
	}

	if err := s.Bookings.Create(&record); err != nil {
		logger.Warn("booking submission failed, retaining draft",
			zap.String("draftID", draftID), zap.Error(err))
		draft.Submitting = false
		if saveErr := s.Store.Save(ctx, draft); saveErr != nil {
			logger.Error("failed to unlock draft after submission failure",
				zap.String("draftID", draftID), zap.Error(saveErr))
		}
		return nil, NewSubmissionFailureError(fmt.Sprintf("failed to create booking: %v", err))
	}

	if s.Reminders != nil {
		if err := s.Reminders.Schedule(record); err != nil {
			logger.Warn("failed to schedule lesson reminder",
				zap.String("bookingID", record.ID), zap.Error(err))
		}
	}

	if err := s.Store.Delete(ctx, draftID); err != nil {
		logger.Warn("failed to clear submitted draft", zap.String("draftID", draftID), zap.Error(err))
	}
	return &record, nil
}

// Cancel discards a draft.
func (s *DefaultWizardService) Cancel(ctx context.Context, draftID string) error {
	return s.Store.Delete(ctx, draftID)
}
