package handlers

import (
	"errors"
	"net/http"
	"testing"

	"blissdrive/services/booking"

	"github.com/stretchr/testify/assert"
)

func TestFlowStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, flowStatus(booking.NewInvalidSelectionError("bad duration")))
	assert.Equal(t, http.StatusConflict, flowStatus(booking.NewSlotUnavailableError("taken")))
	assert.Equal(t, http.StatusConflict, flowStatus(booking.NewDraftLockedError("in flight")))
	assert.Equal(t, http.StatusNotFound, flowStatus(booking.NewDraftNotFoundError("expired")))
	assert.Equal(t, http.StatusBadGateway, flowStatus(booking.NewSubmissionFailureError("repo down")))
	assert.Equal(t, http.StatusInternalServerError, flowStatus(errors.New("something else")))
}
