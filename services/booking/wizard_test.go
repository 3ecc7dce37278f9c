package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"blissdrive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// memDraftStore round-trips drafts through JSON so tests observe the same
// value semantics as the Redis-backed store.
type memDraftStore struct {
	drafts map[string][]byte
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{drafts: make(map[string][]byte)}
}

func (s *memDraftStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.drafts[draft.DraftID] = data
	return nil
}

func (s *memDraftStore) Get(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	data, ok := s.drafts[draftID]
	if !ok {
		return nil, NewDraftNotFoundError("booking draft " + draftID + " not found or expired")
	}
	var draft models.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *memDraftStore) Delete(ctx context.Context, draftID string) error {
	delete(s.drafts, draftID)
	return nil
}

type fakeBookingRepo struct {
	created    []models.Booking
	failCreate bool
	taken      map[string]bool
}

func (r *fakeBookingRepo) Create(booking *models.Booking) error {
	if r.failCreate {
		return errors.New("repository down")
	}
	r.created = append(r.created, *booking)
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(id, status string) error { return nil }
func (r *fakeBookingRepo) Delete(id string) error               { return nil }
func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	return nil, errors.New("not found")
}
func (r *fakeBookingRepo) GetByStudent(studentID string) ([]models.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) GetAll() ([]models.Booking, error)                       { return nil, nil }
func (r *fakeBookingRepo) BookedSlotIDs(date, companionID string) (map[string]bool, error) {
	return r.taken, nil
}

type fakeCouponRepo struct {
	coupons map[string]models.Coupon
}

func (r *fakeCouponRepo) Create(coupon *models.Coupon) error { return nil }
func (r *fakeCouponRepo) Update(coupon *models.Coupon) error { return nil }
func (r *fakeCouponRepo) Delete(id string) error             { return nil }
func (r *fakeCouponRepo) GetByCode(code string) (*models.Coupon, error) {
	coupon, ok := r.coupons[code]
	if !ok {
		return nil, nil
	}
	return &coupon, nil
}
func (r *fakeCouponRepo) GetAll() ([]models.Coupon, error) { return nil, nil }

type fakeStudentRepo struct {
	students map[string]models.Student
}

func (r *fakeStudentRepo) Create(student *models.Student) error                 { return nil }
func (r *fakeStudentRepo) Update(student *models.Student) error                 { return nil }
func (r *fakeStudentRepo) UpdateSetDocument(id string, updateDoc bson.M) error  { return nil }
func (r *fakeStudentRepo) Delete(id string) error                               { return nil }
func (r *fakeStudentRepo) GetByEmail(email string) (*models.Student, error)     { return nil, nil }
func (r *fakeStudentRepo) GetByTokenHash(hash string) (*models.Student, error)  { return nil, nil }
func (r *fakeStudentRepo) GetAll() ([]models.Student, error)                    { return nil, nil }
func (r *fakeStudentRepo) AddSavedAddress(id string, a models.SavedAddress) error { return nil }
func (r *fakeStudentRepo) GetByID(id string) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, errors.New("student not found")
	}
	return &student, nil
}

type fakeReminders struct {
	scheduled []models.Booking
}

func (r *fakeReminders) Schedule(booking models.Booking) error {
	r.scheduled = append(r.scheduled, booking)
	return nil
}

func newTestWizard(bookings *fakeBookingRepo, coupons *fakeCouponRepo) (*DefaultWizardService, *fakeReminders) {
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	if coupons == nil {
		coupons = &fakeCouponRepo{coupons: map[string]models.Coupon{}}
	}
	reminders := &fakeReminders{}
	svc := &DefaultWizardService{
		Store:    newMemDraftStore(),
		Slots:    NewSlotGenerator(DefaultWindow(), stubAvailability{taken: bookings.taken}),
		Coupons:  coupons,
		Bookings: bookings,
		Students: &fakeStudentRepo{students: map[string]models.Student{
			"student-1": {
				ID: "student-1",
				SavedAddresses: []models.SavedAddress{
					{ID: "addr-1", Label: "Home", Address: "12 Elm Street"},
				},
			},
		}},
		Reminders: reminders,
	}
	return svc, reminders
}

// draftThroughStepOne walks a fresh draft through valid step-1 selections.
func draftThroughStepOne(t *testing.T, svc *DefaultWizardService) *models.BookingDraft {
	t.Helper()
	ctx := context.Background()

	draft, err := svc.StartDraft(ctx, "student-1")
	require.NoError(t, err)
	require.Equal(t, models.StepSelectTypeAndSlot, draft.Step)

	draft, err = svc.UpdateSelection(ctx, draft.DraftID, SelectionUpdate{
		LessonType:      models.LessonPractice,
		Date:            "2026-09-01",
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	require.NotEmpty(t, draft.Slots)
	require.Equal(t, 90.0, draft.EstimatedPrice)

	slotID := SlotID("2026-09-01", 600) // 10:00
	draft, err = svc.SelectSlot(ctx, draft.DraftID, slotID)
	require.NoError(t, err)
	require.Equal(t, slotID, draft.SelectedSlotID)

	draft, err = svc.AcceptTerms(ctx, draft.DraftID, true)
	require.NoError(t, err)
	return draft
}

func TestWizardHappyPath(t *testing.T) {
	bookings := &fakeBookingRepo{}
	svc, reminders := newTestWizard(bookings, nil)
	ctx := context.Background()

	draft := draftThroughStepOne(t, svc)

	draft, err := svc.Advance(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.Equal(t, models.StepPickupLocation, draft.Step)

	draft, err = svc.SetPickup(ctx, draft.DraftID, "addr-1", "")
	require.NoError(t, err)
	assert.Equal(t, "12 Elm Street", draft.PickupAddress)

	draft, err = svc.Advance(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmBooking, draft.Step)

	record, err := svc.Submit(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.Equal(t, "pending", record.Status)
	assert.Equal(t, "student-1", record.StudentID)
	assert.Equal(t, SlotID("2026-09-01", 600), record.SlotID)
	assert.Equal(t, 90.0, record.EstimatedPrice)
	assert.Equal(t, 600, record.Start)
	assert.Equal(t, 690, record.End)

	require.Len(t, bookings.created, 1)
	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, record.ID, reminders.scheduled[0].ID)

	// The draft is discarded after a successful submission.
	_, err = svc.GetDraft(ctx, draft.DraftID)
	assert.True(t, HasCode(err, CodeDraftNotFound))
}

func TestWizardUpdateSelectionClearsSlotChoice(t *testing.T) {
	svc, _ := newTestWizard(nil, nil)
	ctx := context.Background()

	draft := draftThroughStepOne(t, svc)
	require.NotEmpty(t, draft.SelectedSlotID)

	// Changing the duration regenerates slots and clears the selection.
	draft, err := svc.UpdateSelection(ctx, draft.DraftID, SelectionUpdate{
		LessonType:      models.LessonPractice,
		Date:            "2026-09-01",
		DurationMinutes: 180,
	})
	require.NoError(t, err)
	assert.Empty(t, draft.SelectedSlotID)
	assert.Equal(t, 180.0, draft.EstimatedPrice)
	assert.Len(t, draft.Slots, 15)
}

func TestWizardUpdateSelectionRejectsBadInput(t *testing.T) {
	svc, _ := newTestWizard(nil, nil)
	ctx := context.Background()

	draft, err := svc.StartDraft(ctx, "student-1")
	require.NoError(t, err)

	_, err = svc.UpdateSelection(ctx, draft.DraftID, SelectionUpdate{
		LessonType:      models.LessonType("freestyle"),
		Date:            "2026-09-01",
		DurationMinutes: 60,
	})
	assert.True(t, HasCode(err, CodeInvalidSelection))

	_, err = svc.UpdateSelection(ctx, draft.DraftID, SelectionUpdate{
		LessonType:      models.LessonPractice,
		Date:            "2026-09-01",
		DurationMinutes: 45,
	})
	assert.True(t, HasCode(err, CodeInvalidSelection))
}

func TestWizardSelectSlotRejections(t *testing.T) {
	takenID := SlotID("2026-09-01", 600)
	bookings := &fakeBookingRepo{taken: map[string]bool{takenID: true}}
	svc, _ := newTestWizard(bookings, nil)
	ctx := context.Background()

	draft, err := svc.StartDraft(ctx, "student-1")
	require.NoError(t, err)
	draft, err = svc.UpdateSelection(ctx, draft.DraftID, SelectionUpdate{
		LessonType:      models.LessonPractice,
		Date:            "2026-09-01",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	_, err = svc.SelectSlot(ctx, draft.DraftID, "2026-09-01-23:00")
	assert.True(t, HasCode(err, CodeInvalidSelection))

	_, err = svc.SelectSlot(ctx, draft.DraftID, takenID)
	assert.True(t, HasCode(err, CodeSlotUnavailable))
}

func TestWizardAdvanceGuards(t *testing.T) {
	svc, _ := newTestWizard(nil, nil)
	ctx := context.Background()

	draft, err := svc.StartDraft(ctx, "student-1")
	require.NoError(t, err)

	// Nothing selected yet.
	_, err = svc.Advance(ctx, draft.DraftID)
	assert.True(t, HasCode(err, CodeInvalidSelection))

	// Everything but the terms checkbox.
	draft, err = svc.UpdateSelection(ctx, draft.DraftID, SelectionUpdate{
		LessonType:      models.LessonPractice,
		Date:            "2026-09-01",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, draft.DraftID, SlotID("2026-09-01", 600))
	require.NoError(t, err)
	_, err = svc.Advance(ctx, draft.DraftID)
	assert.True(t, HasCode(err, CodeInvalidSelection))

	_, err = svc.AcceptTerms(ctx, draft.DraftID, true)
	require.NoError(t, err)
	draft, err = svc.Advance(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.Equal(t, models.StepPickupLocation, draft.Step)

	// Step 2 requires a pickup location.
	_, err = svc.Advance(ctx, draft.DraftID)
	assert.True(t, HasCode(err, CodeInvalidSelection))
}

func TestWizardBackKeepsEnteredData(t *testing.T) {
	svc, _ := newTestWizard(nil, nil)
	ctx := context.Background()

	draft := draftThroughStepOne(t, svc)
	selected := draft.SelectedSlotID

	draft, err := svc.Advance(ctx, draft.DraftID)
	require.NoError(t, err)
	draft, err = svc.SetPickup(ctx, draft.DraftID, "", "45 Oak Avenue")
	require.NoError(t, err)

	draft, err = svc.Back(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectTypeAndSlot, draft.Step)
	assert.Equal(t, selected, draft.SelectedSlotID)
	assert.Equal(t, "45 Oak Avenue", draft.PickupAddress)
	assert.True(t, draft.TermsAccepted)

	// Back at step 1 is a no-op.
	draft, err = svc.Back(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.Equal(t, models.StepSelectTypeAndSlot, draft.Step)
}

func TestWizardApplyCoupon(t *testing.T) {
	coupons := &fakeCouponRepo{coupons: map[string]models.Coupon{
		"SAVE10": {ID: "c-1", Code: "SAVE10", Kind: "percent", Value: 10, Active: true},
		"DEAD":   {ID: "c-2", Code: "DEAD", Kind: "flat", Value: 5, Active: false},
	}}
	bookings := &fakeBookingRepo{}
	svc, _ := newTestWizard(bookings, coupons)
	ctx := context.Background()

	draft := draftThroughStepOne(t, svc)

	_, err := svc.ApplyCoupon(ctx, draft.DraftID, "DEAD")
	assert.True(t, HasCode(err, CodeInvalidSelection))
	_, err = svc.ApplyCoupon(ctx, draft.DraftID, "NOPE")
	assert.True(t, HasCode(err, CodeInvalidSelection))

	draft, err = svc.ApplyCoupon(ctx, draft.DraftID, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", draft.CouponCode)

	_, err = svc.Advance(ctx, draft.DraftID)
	require.NoError(t, err)
	draft, err = svc.SetPickup(ctx, draft.DraftID, "addr-1", "")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, draft.DraftID)
	require.NoError(t, err)

	record, err := svc.Submit(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.Equal(t, 81.0, record.EstimatedPrice) // 90 minus 10%
}

func TestWizardSubmitFailureRetainsDraft(t *testing.T) {
	bookings := &fakeBookingRepo{failCreate: true}
	svc, reminders := newTestWizard(bookings, nil)
	ctx := context.Background()

	draft := draftThroughStepOne(t, svc)
	_, err := svc.Advance(ctx, draft.DraftID)
	require.NoError(t, err)
	_, err = svc.SetPickup(ctx, draft.DraftID, "", "45 Oak Avenue")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, draft.DraftID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, draft.DraftID)
	assert.True(t, HasCode(err, CodeSubmissionFailure))
	assert.Empty(t, reminders.scheduled)

	// The draft survives with the lock released so the student can retry.
	kept, err := svc.GetDraft(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.False(t, kept.Submitting)
	assert.Equal(t, models.StepConfirmBooking, kept.Step)

	bookings.failCreate = false
	record, err := svc.Submit(ctx, draft.DraftID)
	require.NoError(t, err)
	assert.Equal(t, "pending", record.Status)
}

func TestWizardSubmitRequiresConfirmationStep(t *testing.T) {
	svc, _ := newTestWizard(nil, nil)
	ctx := context.Background()

	draft := draftThroughStepOne(t, svc)
	_, err := svc.Submit(ctx, draft.DraftID)
	assert.True(t, HasCode(err, CodeInvalidSelection))
}

func TestWizardLockedDraftBlocksChanges(t *testing.T) {
	svc, _ := newTestWizard(nil, nil)
	ctx := context.Background()

	draft := draftThroughStepOne(t, svc)
	draft.Submitting = true
	require.NoError(t, svc.Store.Save(ctx, draft))

	_, err := svc.UpdateSelection(ctx, draft.DraftID, SelectionUpdate{
		LessonType:      models.LessonPractice,
		Date:            "2026-09-02",
		DurationMinutes: 60,
	})
	assert.True(t, HasCode(err, CodeDraftLocked))

	_, err = svc.SelectSlot(ctx, draft.DraftID, SlotID("2026-09-01", 630))
	assert.True(t, HasCode(err, CodeDraftLocked))
}

func TestWizardSetPickupValidation(t *testing.T) {
	svc, _ := newTestWizard(nil, nil)
	ctx := context.Background()

	draft, err := svc.StartDraft(ctx, "student-1")
	require.NoError(t, err)

	_, err = svc.SetPickup(ctx, draft.DraftID, "", "   ")
	assert.True(t, HasCode(err, CodeInvalidSelection))

	_, err = svc.SetPickup(ctx, draft.DraftID, "addr-unknown", "")
	assert.True(t, HasCode(err, CodeInvalidSelection))

	draft, err = svc.SetPickup(ctx, draft.DraftID, "", "45 Oak Avenue")
	require.NoError(t, err)
	assert.Equal(t, "45 Oak Avenue", draft.PickupAddress)
	assert.Empty(t, draft.PickupAddressID)
}

func TestCouponApply(t *testing.T) {
	percent := models.Coupon{Kind: "percent", Value: 50, Active: true}
	assert.Equal(t, 45.0, percent.Apply(90))

	flat := models.Coupon{Kind: "flat", Value: 100, Active: true}
	assert.Equal(t, 0.0, flat.Apply(90), "discount never drives the price below zero")

	expired := models.Coupon{Kind: "flat", Value: 5, Active: true, ExpiresAt: time.Now().Add(-time.Hour)}
	assert.False(t, expired.Usable(time.Now()))
}
