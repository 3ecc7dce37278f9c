package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	reviewRepo "blissdrive/database/repository/review"
	"blissdrive/models"
	"blissdrive/services/booking"
	"blissdrive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Clock abstracts time.Now so tests can pin the start instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Amount computes the running cost of a session in full precision:
// hourlyRate x elapsedSeconds / 3600. Rounding to two decimals happens only
// at display and invoice boundaries, never in the accumulator.
func Amount(hourlyRate float64, elapsedSeconds int64) float64 {
	return hourlyRate * float64(elapsedSeconds) / 3600
}

// Engine tracks one live lesson session and computes its running cost,
// driving the Idle -> Running -> AwaitingPayment -> AwaitingReview sequence.
// The elapsed-seconds counter is the authoritative billing figure: it is
// incremented once per second by the engine's single owned ticker while
// Running and frozen forever at stop. The mutex serializes tick increments
// against stop reads.
type Engine struct {
	mu      sync.Mutex
	state   models.SessionState
	active  *models.ActiveSession
	elapsed int64
	receipt *models.SessionReceipt

	ticker *time.Ticker
	done   chan struct{}

	// review context carried from the paid session into AwaitingReview.
	reviewSession string
	reviewStudent string

	Payments PaymentHandler
	Reviews  reviewRepo.ReviewRepository
	Clock    Clock
	Logger   *zap.Logger
}

// NewEngine builds an Idle engine.
func NewEngine(payments PaymentHandler, reviews reviewRepo.ReviewRepository, logger *zap.Logger) *Engine {
	return &Engine{
		state:    models.SessionIdle,
		Payments: payments,
		Reviews:  reviews,
		Clock:    systemClock{},
		Logger:   logger,
	}
}

// StartInput identifies the lesson being timed.
type StartInput struct {
	BookingID      string
	StudentID      string
	InstructorName string
	LessonType     models.LessonType
}

// Start captures the start instant, pins the hourly rate from the rate table
// and begins ticking. Starting while already Running is rejected as a logged
// no-op; a prior session awaiting payment or review must settle first.
func (e *Engine) Start(in StartInput) (*models.ActiveSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case models.SessionRunning:
		e.Logger.Warn("session start rejected: timer already running",
			zap.String("studentID", in.StudentID))
		return nil, NewTimerAlreadyRunningError("a session is already running")
	case models.SessionAwaitingPayment:
		return nil, NewInvalidStateError("previous session is awaiting payment")
	case models.SessionAwaitingReview:
		return nil, NewInvalidStateError("previous session is awaiting review")
	}

	rate, err := booking.HourlyRate(in.LessonType)
	if err != nil {
		return nil, NewInvalidStateError(err.Error())
	}

	// Clear any leftover tick source before arming a new one; two live
	// tickers would double the clock speed.
	e.stopTickerLocked()

	e.active = &models.ActiveSession{
		SessionID:      uuid.New().String(),
		BookingID:      in.BookingID,
		StudentID:      in.StudentID,
		InstructorName: in.InstructorName,
		LessonType:     in.LessonType,
		StartInstant:   e.Clock.Now(),
		HourlyRate:     rate,
	}
	e.elapsed = 0
	e.receipt = nil
	e.state = models.SessionRunning

	e.ticker = time.NewTicker(time.Second)
	e.done = make(chan struct{})
	go e.run(e.ticker, e.done)

	e.Logger.Info("session started",
		zap.String("sessionID", e.active.SessionID),
		zap.String("lessonType", string(in.LessonType)),
		zap.Float64("hourlyRate", rate))

	session := *e.active
	return &session, nil
}

func (e *Engine) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-ticker.C:
			e.addSeconds(1)
		case <-done:
			return
		}
	}
}

func (e *Engine) addSeconds(n int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == models.SessionRunning {
		e.elapsed += n
	}
}

// stopTickerLocked releases the owned tick source. Callers hold e.mu.
func (e *Engine) stopTickerLocked() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	if e.done != nil {
		close(e.done)
		e.done = nil
	}
}

// Status reports the current state and, while a session exists, its live
// figures. The amount is rounded for display only.
func (e *Engine) Status() (models.SessionState, *models.SessionReceipt) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case models.SessionRunning:
		return e.state, &models.SessionReceipt{
			SessionID:      e.active.SessionID,
			ElapsedSeconds: e.elapsed,
			Elapsed:        utils.FormatElapsed(e.elapsed),
			HourlyRate:     e.active.HourlyRate,
			Amount:         utils.Round2(Amount(e.active.HourlyRate, e.elapsed)),
		}
	case models.SessionAwaitingPayment:
		receipt := *e.receipt
		return e.state, &receipt
	default:
		return e.state, nil
	}
}

// Stop freezes the elapsed-seconds counter and transitions to
// AwaitingPayment. The frozen value is authoritative for billing; further
// time passage must not change the reported amount.
func (e *Engine) Stop() (*models.SessionReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != models.SessionRunning {
		return nil, NewInvalidStateError(fmt.Sprintf("cannot stop a session in state %s", e.state))
	}

	e.stopTickerLocked()
	e.state = models.SessionAwaitingPayment
	e.receipt = &models.SessionReceipt{
		SessionID:      e.active.SessionID,
		ElapsedSeconds: e.elapsed,
		Elapsed:        utils.FormatElapsed(e.elapsed),
		HourlyRate:     e.active.HourlyRate,
		Amount:         utils.Round2(Amount(e.active.HourlyRate, e.elapsed)),
	}

	e.Logger.Info("session stopped",
		zap.String("sessionID", e.active.SessionID),
		zap.Int64("elapsedSeconds", e.receipt.ElapsedSeconds),
		zap.Float64("amount", e.receipt.Amount))

	receipt := *e.receipt
	return &receipt, nil
}

// ConfirmPayment hands the frozen figures to the payment handler. On failure
// the engine remains in AwaitingPayment with the receipt intact so the
// student may retry; on success the session ends and a review draft opens.
func (e *Engine) ConfirmPayment(ctx context.Context, method string) (*models.Invoice, *models.ReviewDraft, error) {
	e.mu.Lock()
	if e.state != models.SessionAwaitingPayment {
		e.mu.Unlock()
		return nil, nil, NewInvalidStateError(fmt.Sprintf("no payment awaited in state %s", e.state))
	}
	req := models.PaymentRequest{
		SessionID:      e.receipt.SessionID,
		StudentID:      e.active.StudentID,
		ElapsedSeconds: e.receipt.ElapsedSeconds,
		Amount:         e.receipt.Amount,
		HourlyRate:     e.receipt.HourlyRate,
		Method:         method,
		Currency:       "usd",
		Description:    fmt.Sprintf("%s lesson, %s", e.active.LessonType, e.receipt.Elapsed),
	}
	e.mu.Unlock()

	// The payment call runs outside the lock; the tick source is already
	// gone and the receipt is immutable in AwaitingPayment.
	invoice, err := e.Payments.ProcessPayment(ctx, req)
	if err != nil {
		e.Logger.Warn("payment failed, session stays awaiting payment",
			zap.String("sessionID", req.SessionID), zap.Error(err))
		return nil, nil, NewPaymentFailureError(err.Error())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != models.SessionAwaitingPayment || e.active == nil {
		// Abandoned while the payment call was in flight.
		return invoice, nil, NewInvalidStateError("session ended while payment was processing")
	}
	review := &models.ReviewDraft{SessionID: e.active.SessionID}
	e.reviewSession = e.active.SessionID
	e.reviewStudent = e.active.StudentID
	e.active = nil
	e.receipt = nil
	e.state = models.SessionAwaitingReview

	return invoice, review, nil
}

// Abandon voids a session awaiting payment without charging. The accrued
// time is discarded and the engine returns to Idle.
func (e *Engine) Abandon() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != models.SessionAwaitingPayment {
		return NewInvalidStateError(fmt.Sprintf("cannot abandon a session in state %s", e.state))
	}
	e.Logger.Info("session abandoned without payment",
		zap.String("sessionID", e.active.SessionID))
	e.active = nil
	e.receipt = nil
	e.state = models.SessionIdle
	return nil
}

// SubmitReview stores the post-session review and returns the engine to Idle.
func (e *Engine) SubmitReview(rating int, comment string) (*models.Review, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != models.SessionAwaitingReview {
		return nil, NewInvalidStateError(fmt.Sprintf("no review awaited in state %s", e.state))
	}
	if rating < 1 || rating > 5 {
		return nil, NewInvalidReviewError("rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > 500 {
		return nil, NewInvalidReviewError("comment must be at most 500 characters")
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		SessionID: e.reviewSession,
		StudentID: e.reviewStudent,
		Rating:    rating,
		Comment:   comment,
	}
	if err := e.Reviews.Create(review); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	e.state = models.SessionIdle
	return review, nil
}

// SkipReview discards the review draft and returns the engine to Idle.
func (e *Engine) SkipReview() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != models.SessionAwaitingReview {
		return NewInvalidStateError(fmt.Sprintf("no review awaited in state %s", e.state))
	}
	e.state = models.SessionIdle
	return nil
}

// Close releases the tick source on teardown regardless of state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTickerLocked()
}
