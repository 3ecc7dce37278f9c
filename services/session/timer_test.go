package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"blissdrive/models"
	"blissdrive/services/booking"
	"blissdrive/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePayments struct {
	fail     bool
	requests []models.PaymentRequest
}

func (p *fakePayments) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	p.requests = append(p.requests, req)
	if p.fail {
		return nil, errors.New("card declined")
	}
	return &models.Invoice{
		InvoiceID: "inv-1",
		SessionID: req.SessionID,
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Status:    "paid",
	}, nil
}

type fakeReviews struct {
	created []models.Review
	fail    bool
}

func (r *fakeReviews) Create(review *models.Review) error {
	if r.fail {
		return errors.New("store down")
	}
	r.created = append(r.created, *review)
	return nil
}

func (r *fakeReviews) GetBySession(sessionID string) (*models.Review, error) { return nil, nil }
func (r *fakeReviews) GetByCompanion(companionID string) ([]models.Review, error) {
	return nil, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newTestEngine(payments *fakePayments, reviews *fakeReviews) *Engine {
	if payments == nil {
		payments = &fakePayments{}
	}
	if reviews == nil {
		reviews = &fakeReviews{}
	}
	e := NewEngine(payments, reviews, zap.NewNop())
	e.Clock = fixedClock{at: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return e
}

// freezeTicker detaches the live tick source so tests drive the counter
// through addSeconds alone.
func freezeTicker(e *Engine) {
	e.mu.Lock()
	e.stopTickerLocked()
	e.mu.Unlock()
}

func startRunning(t *testing.T, e *Engine) *models.ActiveSession {
	t.Helper()
	active, err := e.Start(StartInput{
		BookingID:      "b-1",
		StudentID:      "student-1",
		InstructorName: "Dana",
		LessonType:     models.LessonPractice,
	})
	require.NoError(t, err)
	freezeTicker(e)
	return active
}

func TestAmount(t *testing.T) {
	assert.Equal(t, 60.0, Amount(60, 3600))
	assert.Equal(t, 30.0, Amount(60, 1800))
	assert.Equal(t, 105.0, Amount(60, 6300))
	assert.Equal(t, 105.0, utils.Round2(Amount(70, 5400)))
	assert.Equal(t, 0.0, Amount(60, 0))

	// One second of a practice lesson, rounded only at display.
	assert.Equal(t, 0.02, utils.Round2(Amount(60, 1)))
}

func TestStartPinsRateAndRuns(t *testing.T) {
	e := newTestEngine(nil, nil)
	defer e.Close()

	active := startRunning(t, e)
	assert.NotEmpty(t, active.SessionID)
	assert.Equal(t, 60.0, active.HourlyRate)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), active.StartInstant)

	state, receipt := e.Status()
	assert.Equal(t, models.SessionRunning, state)
	require.NotNil(t, receipt)
	assert.Equal(t, int64(0), receipt.ElapsedSeconds)
	assert.Equal(t, "00:00:00", receipt.Elapsed)
	assert.Equal(t, 0.0, receipt.Amount)
}

func TestRunningAmountMatchesEstimate(t *testing.T) {
	e := newTestEngine(nil, nil)
	defer e.Close()

	startRunning(t, e)
	e.addSeconds(5400) // 90 minutes on the clock

	_, receipt := e.Status()
	require.NotNil(t, receipt)
	assert.Equal(t, int64(5400), receipt.ElapsedSeconds)
	assert.Equal(t, "01:30:00", receipt.Elapsed)

	estimate, err := booking.EstimatePrice(models.LessonPractice, 90)
	require.NoError(t, err)
	assert.Equal(t, utils.Round2(estimate), receipt.Amount)
	assert.Equal(t, 90.0, receipt.Amount)
}

func TestDoubleStartRejected(t *testing.T) {
	e := newTestEngine(nil, nil)
	defer e.Close()

	startRunning(t, e)
	_, err := e.Start(StartInput{StudentID: "student-1", LessonType: models.LessonPractice})
	assert.True(t, HasCode(err, CodeTimerAlreadyRunning))

	// The running session is untouched.
	state, _ := e.Status()
	assert.Equal(t, models.SessionRunning, state)
}

func TestStopFreezesReceipt(t *testing.T) {
	e := newTestEngine(nil, nil)
	defer e.Close()

	startRunning(t, e)
	e.addSeconds(1800)

	receipt, err := e.Stop()
	require.NoError(t, err)
	assert.Equal(t, int64(1800), receipt.ElapsedSeconds)
	assert.Equal(t, "00:30:00", receipt.Elapsed)
	assert.Equal(t, 30.0, receipt.Amount)

	// Further time passage must not change the frozen figures.
	e.addSeconds(600)
	state, after := e.Status()
	assert.Equal(t, models.SessionAwaitingPayment, state)
	require.NotNil(t, after)
	assert.Equal(t, int64(1800), after.ElapsedSeconds)
	assert.Equal(t, 30.0, after.Amount)
}

func TestStopRequiresRunning(t *testing.T) {
	e := newTestEngine(nil, nil)
	_, err := e.Stop()
	assert.True(t, HasCode(err, CodeInvalidState))
}

func TestConfirmPaymentSuccess(t *testing.T) {
	payments := &fakePayments{}
	e := newTestEngine(payments, nil)
	defer e.Close()

	active := startRunning(t, e)
	e.addSeconds(3600)
	_, err := e.Stop()
	require.NoError(t, err)

	invoice, review, err := e.ConfirmPayment(context.Background(), "card")
	require.NoError(t, err)
	require.NotNil(t, invoice)
	require.NotNil(t, review)
	assert.Equal(t, active.SessionID, review.SessionID)

	require.Len(t, payments.requests, 1)
	req := payments.requests[0]
	assert.Equal(t, int64(3600), req.ElapsedSeconds)
	assert.Equal(t, 60.0, req.Amount)
	assert.Equal(t, "card", req.Method)
	assert.Equal(t, "usd", req.Currency)

	state, _ := e.Status()
	assert.Equal(t, models.SessionAwaitingReview, state)
}

func TestConfirmPaymentFailureKeepsSession(t *testing.T) {
	payments := &fakePayments{fail: true}
	e := newTestEngine(payments, nil)
	defer e.Close()

	startRunning(t, e)
	e.addSeconds(1800)
	frozen, err := e.Stop()
	require.NoError(t, err)

	_, _, err = e.ConfirmPayment(context.Background(), "card")
	assert.True(t, HasCode(err, CodePaymentFailure))

	// The session stays frozen for a retry with the same figures.
	state, receipt := e.Status()
	assert.Equal(t, models.SessionAwaitingPayment, state)
	require.NotNil(t, receipt)
	assert.Equal(t, frozen.ElapsedSeconds, receipt.ElapsedSeconds)
	assert.Equal(t, frozen.Amount, receipt.Amount)

	payments.fail = false
	_, _, err = e.ConfirmPayment(context.Background(), "card")
	require.NoError(t, err)
	require.Len(t, payments.requests, 2)
	assert.Equal(t, payments.requests[0].Amount, payments.requests[1].Amount)
}

func TestConfirmPaymentRequiresAwaitingPayment(t *testing.T) {
	e := newTestEngine(nil, nil)
	_, _, err := e.ConfirmPayment(context.Background(), "card")
	assert.True(t, HasCode(err, CodeInvalidState))
}

func TestAbandon(t *testing.T) {
	e := newTestEngine(nil, nil)
	defer e.Close()

	startRunning(t, e)
	assert.True(t, HasCode(e.Abandon(), CodeInvalidState), "abandon requires a stopped session")

	e.addSeconds(1800)
	_, err := e.Stop()
	require.NoError(t, err)

	require.NoError(t, e.Abandon())
	state, receipt := e.Status()
	assert.Equal(t, models.SessionIdle, state)
	assert.Nil(t, receipt)

	// A fresh session may start after abandoning.
	_, err = e.Start(StartInput{StudentID: "student-1", LessonType: models.LessonRoadTest})
	require.NoError(t, err)
	freezeTicker(e)
}

func TestStartBlockedUntilSettled(t *testing.T) {
	e := newTestEngine(nil, nil)
	defer e.Close()

	startRunning(t, e)
	e.addSeconds(60)
	_, err := e.Stop()
	require.NoError(t, err)

	_, err = e.Start(StartInput{StudentID: "student-1", LessonType: models.LessonPractice})
	assert.True(t, HasCode(err, CodeInvalidState))

	_, _, err = e.ConfirmPayment(context.Background(), "cash")
	require.NoError(t, err)

	_, err = e.Start(StartInput{StudentID: "student-1", LessonType: models.LessonPractice})
	assert.True(t, HasCode(err, CodeInvalidState))

	require.NoError(t, e.SkipReview())
	_, err = e.Start(StartInput{StudentID: "student-1", LessonType: models.LessonPractice})
	require.NoError(t, err)
	freezeTicker(e)
}

func settleToReview(t *testing.T, e *Engine) *models.ActiveSession {
	t.Helper()
	active := startRunning(t, e)
	e.addSeconds(60)
	_, err := e.Stop()
	require.NoError(t, err)
	_, _, err = e.ConfirmPayment(context.Background(), "cash")
	require.NoError(t, err)
	return active
}

func TestSubmitReview(t *testing.T) {
	reviews := &fakeReviews{}
	e := newTestEngine(nil, reviews)
	defer e.Close()

	active := settleToReview(t, e)

	_, err := e.SubmitReview(0, "fine")
	assert.True(t, HasCode(err, CodeInvalidReview))
	_, err = e.SubmitReview(6, "fine")
	assert.True(t, HasCode(err, CodeInvalidReview))
	_, err = e.SubmitReview(5, strings.Repeat("x", 501))
	assert.True(t, HasCode(err, CodeInvalidReview))

	review, err := e.SubmitReview(5, "  great lesson  ")
	require.NoError(t, err)
	assert.Equal(t, active.SessionID, review.SessionID)
	assert.Equal(t, "student-1", review.StudentID)
	assert.Equal(t, "great lesson", review.Comment)
	require.Len(t, reviews.created, 1)

	state, _ := e.Status()
	assert.Equal(t, models.SessionIdle, state)
}

func TestSubmitReviewCommentLimitCountsCharacters(t *testing.T) {
	reviews := &fakeReviews{}
	e := newTestEngine(nil, reviews)
	defer e.Close()

	settleToReview(t, e)

	// 501 characters is over the limit regardless of byte width.
	_, err := e.SubmitReview(5, strings.Repeat("é", 501))
	assert.True(t, HasCode(err, CodeInvalidReview))

	// 300 characters of a two-byte rune is 600 bytes but well under the
	// 500-character limit.
	comment := strings.Repeat("é", 300)
	review, err := e.SubmitReview(5, comment)
	require.NoError(t, err)
	assert.Equal(t, comment, review.Comment)
	require.Len(t, reviews.created, 1)
}

func TestSubmitReviewStoreFailureKeepsState(t *testing.T) {
	reviews := &fakeReviews{fail: true}
	e := newTestEngine(nil, reviews)
	defer e.Close()

	settleToReview(t, e)

	_, err := e.SubmitReview(4, "ok")
	require.Error(t, err)

	state, _ := e.Status()
	assert.Equal(t, models.SessionAwaitingReview, state, "a failed store keeps the review pending")
}

func TestSkipReview(t *testing.T) {
	e := newTestEngine(nil, nil)
	defer e.Close()

	assert.True(t, HasCode(e.SkipReview(), CodeInvalidState))

	settleToReview(t, e)
	require.NoError(t, e.SkipReview())

	state, _ := e.Status()
	assert.Equal(t, models.SessionIdle, state)
}

func TestManagerEnginePerStudent(t *testing.T) {
	m := NewManager(&fakePayments{}, &fakeReviews{}, zap.NewNop())
	defer m.Close()

	a := m.EngineFor("student-1")
	b := m.EngineFor("student-2")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.EngineFor("student-1"))
}
