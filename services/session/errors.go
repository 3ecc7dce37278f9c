package session

import (
	"errors"
	"fmt"
)

// StateError is a recoverable session-flow error: the engine stays in its
// current state and the caller may retry or correct.
type StateError struct {
	Code    string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeTimerAlreadyRunning = "timerAlreadyRunning"
	CodePaymentFailure      = "paymentFailure"
	CodeInvalidState        = "invalidState"
	CodeInvalidReview       = "invalidReview"
)

func NewTimerAlreadyRunningError(msg string) error {
	return &StateError{Code: CodeTimerAlreadyRunning, Message: msg}
}

func NewPaymentFailureError(msg string) error {
	return &StateError{Code: CodePaymentFailure, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &StateError{Code: CodeInvalidState, Message: msg}
}

func NewInvalidReviewError(msg string) error {
	return &StateError{Code: CodeInvalidReview, Message: msg}
}

// HasCode reports whether err is a StateError carrying the given code.
func HasCode(err error, code string) bool {
	var se *StateError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
