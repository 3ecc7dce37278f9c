package handlers

import (
	"net/http"

	"blissdrive/models"
	"blissdrive/services/session"
	"blissdrive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler exposes the live lesson timer and its payment/review flow.
type SessionHandler struct {
	Manager *session.Manager
	Logger  *zap.Logger
}

func NewSessionHandler(manager *session.Manager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Manager: manager, Logger: logger}
}

func sessionStatus(err error) int {
	switch {
	case session.HasCode(err, session.CodeTimerAlreadyRunning),
		session.HasCode(err, session.CodeInvalidState):
		return http.StatusConflict
	case session.HasCode(err, session.CodeInvalidReview):
		return http.StatusBadRequest
	case session.HasCode(err, session.CodePaymentFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Start begins timing a lesson session.
func (h *SessionHandler) Start(c *gin.Context) {
	var input struct {
		BookingID      string            `json:"bookingId"`
		InstructorName string            `json:"instructorName"`
		LessonType     models.LessonType `json:"lessonType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid session payload", err.Error())
		return
	}

	engine := h.Manager.EngineFor(c.GetString("studentID"))
	active, err := engine.Start(session.StartInput{
		BookingID:      input.BookingID,
		StudentID:      c.GetString("studentID"),
		InstructorName: input.InstructorName,
		LessonType:     input.LessonType,
	})
	if err != nil {
		utils.JSONError(c, sessionStatus(err), "Failed to start session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, active)
}

// Status reports the current state and live figures.
func (h *SessionHandler) Status(c *gin.Context) {
	engine := h.Manager.EngineFor(c.GetString("studentID"))
	state, receipt := engine.Status()
	c.JSON(http.StatusOK, gin.H{"state": state.String(), "session": receipt})
}

// Stop freezes the timer and presents the amount due.
func (h *SessionHandler) Stop(c *gin.Context) {
	engine := h.Manager.EngineFor(c.GetString("studentID"))
	receipt, err := engine.Stop()
	if err != nil {
		utils.JSONError(c, sessionStatus(err), "Failed to stop session", err.Error())
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// ConfirmPayment settles the frozen amount. On failure the session stays in
// AwaitingPayment and the student may retry.
func (h *SessionHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment payload", err.Error())
		return
	}

	engine := h.Manager.EngineFor(c.GetString("studentID"))
	invoice, review, err := engine.ConfirmPayment(c.Request.Context(), input.Method)
	if err != nil {
		utils.JSONError(c, sessionStatus(err), "Payment failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice, "review": review})
}

// Abandon voids a session awaiting payment without charging.
func (h *SessionHandler) Abandon(c *gin.Context) {
	engine := h.Manager.EngineFor(c.GetString("studentID"))
	if err := engine.Abandon(); err != nil {
		utils.JSONError(c, sessionStatus(err), "Failed to abandon session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "abandoned"})
}

// SubmitReview stores post-session feedback.
func (h *SessionHandler) SubmitReview(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid review payload", err.Error())
		return
	}

	engine := h.Manager.EngineFor(c.GetString("studentID"))
	review, err := engine.SubmitReview(input.Rating, input.Comment)
	if err != nil {
		utils.JSONError(c, sessionStatus(err), "Failed to submit review", err.Error())
		return
	}
	c.JSON(http.StatusCreated, review)
}

// SkipReview discards the review draft.
func (h *SessionHandler) SkipReview(c *gin.Context) {
	engine := h.Manager.EngineFor(c.GetString("studentID"))
	if err := engine.SkipReview(); err != nil {
		utils.JSONError(c, sessionStatus(err), "Failed to skip review", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "skipped"})
}
