package models

import "time"

// SessionState enumerates the lifecycle of a live lesson session.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionRunning
	SessionAwaitingPayment
	SessionAwaitingReview
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionRunning:
		return "running"
	case SessionAwaitingPayment:
		return "awaitingPayment"
	case SessionAwaitingReview:
		return "awaitingReview"
	default:
		return "unknown"
	}
}

// ActiveSession is the running-timer aggregate. Elapsed time is derived from
// StartInstant plus the tick counter, never stored separately while running.
// HourlyRate is pinned at start and does not follow later rate-table changes.
type ActiveSession struct {
	SessionID      string     `json:"sessionId"`
	BookingID      string     `json:"bookingId,omitempty"`
	StudentID      string     `json:"studentId"`
	InstructorName string     `json:"instructorName"`
	LessonType     LessonType `json:"lessonType"`
	StartInstant   time.Time  `json:"startInstant"`
	HourlyRate     float64    `json:"hourlyRate"`
}

// SessionReceipt is the frozen outcome of a stopped session, presented for
// payment confirmation. ElapsedSeconds is authoritative for billing even if
// confirmation is delayed.
type SessionReceipt struct {
	SessionID      string  `json:"sessionId"`
	ElapsedSeconds int64   `json:"elapsedSeconds"`
	Elapsed        string  `json:"elapsed"` // "HH:MM:SS"
	HourlyRate     float64 `json:"hourlyRate"`
	Amount         float64 `json:"amount"` // rounded to 2dp for display
}

// ReviewDraft collects post-session feedback.
type ReviewDraft struct {
	SessionID string `json:"sessionId"`
	Rating    int    `json:"rating"`  // 1..5
	Comment   string `json:"comment"` // at most 500 chars
}

// Review is a stored student review of a completed session.
type Review struct {
	ID          string    `bson:"id" json:"id"`
	SessionID   string    `bson:"session_id" json:"sessionId"`
	StudentID   string    `bson:"student_id" json:"studentId"`
	CompanionID string    `bson:"companion_id,omitempty" json:"companionId,omitempty"`
	Rating      int       `bson:"rating" json:"rating"`
	Comment     string    `bson:"comment" json:"comment"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
