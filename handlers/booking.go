package handlers

import (
	"net/http"
	"strconv"

	bookingRepo "blissdrive/database/repository/booking"
	"blissdrive/services/booking"
	"blissdrive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the slot generator and the 3-step booking wizard.
type BookingHandler struct {
	Wizard   booking.WizardService
	Slots    *booking.SlotGenerator
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
}

func NewBookingHandler(wizard booking.WizardService, slots *booking.SlotGenerator, bookings bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Wizard: wizard, Slots: slots, Bookings: bookings, Logger: logger}
}

// flowStatus maps a booking-flow error to an HTTP status. Every flow error is
// recoverable: the wizard stays where it is and the client may correct.
func flowStatus(err error) int {
	switch {
	case booking.HasCode(err, booking.CodeInvalidSelection):
		return http.StatusBadRequest
	case booking.HasCode(err, booking.CodeSlotUnavailable),
		booking.HasCode(err, booking.CodeDraftLocked):
		return http.StatusConflict
	case booking.HasCode(err, booking.CodeSubmissionFailure):
		return http.StatusBadGateway
	case booking.HasCode(err, booking.CodeDraftNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetCatalog returns the fixed duration options and hourly rates.
func (h *BookingHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"durations": booking.DurationOptions,
		"rates":     booking.HourlyRates(),
	})
}

// GetSlots handles GET /api/booking/slots?date=...&duration=...&companion=...
func (h *BookingHandler) GetSlots(c *gin.Context) {
	date := c.Query("date")
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid duration", err.Error())
		return
	}

	slots, err := h.Slots.Generate(date, duration, c.Query("companion"))
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Failed to generate slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "duration": duration, "slots": slots})
}

// StartDraft opens a new wizard draft for the authenticated student.
func (h *BookingHandler) StartDraft(c *gin.Context) {
	draft, err := h.Wizard.StartDraft(c.Request.Context(), c.GetString("studentID"))
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Failed to start booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// GetDraft returns the current draft state.
func (h *BookingHandler) GetDraft(c *gin.Context) {
	draft, err := h.Wizard.GetDraft(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Draft not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateSelection records lesson type, date, duration and companion, and
// returns the regenerated slot list.
func (h *BookingHandler) UpdateSelection(c *gin.Context) {
	var sel booking.SelectionUpdate
	if err := c.ShouldBindJSON(&sel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid selection payload", err.Error())
		return
	}

	draft, err := h.Wizard.UpdateSelection(c.Request.Context(), c.Param("draftID"), sel)
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Failed to update selection", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SelectSlot records the chosen time slot.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var input struct {
		SlotID string `json:"slotId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid slot payload", err.Error())
		return
	}

	draft, err := h.Wizard.SelectSlot(c.Request.Context(), c.Param("draftID"), input.SlotID)
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Failed to select slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// AcceptTerms records the terms checkbox.
func (h *BookingHandler) AcceptTerms(c *gin.Context) {
	var input struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid terms payload", err.Error())
		return
	}

	draft, err := h.Wizard.AcceptTerms(c.Request.Context(), c.Param("draftID"), input.Accepted)
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Failed to update terms", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SetPickup records the pickup location for step 2.
func (h *BookingHandler) SetPickup(c *gin.Context) {
	var input struct {
		AddressID string `json:"addressId"`
		Address   string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid pickup payload", err.Error())
		return
	}

	draft, err := h.Wizard.SetPickup(c.Request.Context(), c.Param("draftID"), input.AddressID, input.Address)
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Failed to set pickup", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ApplyCoupon attaches a coupon code to the draft.
func (h *BookingHandler) ApplyCoupon(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid coupon payload", err.Error())
		return
	}

	draft, err := h.Wizard.ApplyCoupon(c.Request.Context(), c.Param("draftID"), input.Code)
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Failed to apply coupon", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Advance moves the wizard forward one step.
func (h *BookingHandler) Advance(c *gin.Context) {
	draft, err := h.Wizard.Advance(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Cannot continue", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Back moves the wizard one step back, keeping entered data.
func (h *BookingHandler) Back(c *gin.Context) {
	draft, err := h.Wizard.Back(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Cannot go back", err.Error())
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Submit finalizes the draft into a pending booking.
func (h *BookingHandler) Submit(c *gin.Context) {
	record, err := h.Wizard.Submit(c.Request.Context(), c.Param("draftID"))
	if err != nil {
		utils.JSONError(c, flowStatus(err), "Booking submission failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": record, "status": "waiting for approval"})
}

// CancelDraft discards the draft.
func (h *BookingHandler) CancelDraft(c *gin.Context) {
	if err := h.Wizard.Cancel(c.Request.Context(), c.Param("draftID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel draft", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// MyBookings lists the authenticated student's bookings.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	bookings, err := h.Bookings.GetByStudent(c.GetString("studentID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
