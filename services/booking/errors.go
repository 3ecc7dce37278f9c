package booking

import (
	"errors"
	"fmt"
)

// FlowError is a recoverable booking-flow error. None of these are fatal: the
// wizard stays in its current step and the caller may correct and retry.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidSelection  = "invalidSelection"
	CodeSlotUnavailable   = "slotUnavailable"
	CodeDraftLocked       = "draftLocked"
	CodeDraftNotFound     = "draftNotFound"
	CodeSubmissionFailure = "submissionFailure"
)

func NewInvalidSelectionError(msg string) error {
	return &FlowError{Code: CodeInvalidSelection, Message: msg}
}

func NewSlotUnavailableError(msg string) error {
	return &FlowError{Code: CodeSlotUnavailable, Message: msg}
}

func NewDraftLockedError(msg string) error {
	return &FlowError{Code: CodeDraftLocked, Message: msg}
}

func NewDraftNotFoundError(msg string) error {
	return &FlowError{Code: CodeDraftNotFound, Message: msg}
}

func NewSubmissionFailureError(msg string) error {
	return &FlowError{Code: CodeSubmissionFailure, Message: msg}
}

// HasCode reports whether err is a FlowError carrying the given code.
func HasCode(err error, code string) bool {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}
