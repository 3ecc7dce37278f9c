package handlers

import (
	studentRepo "blissdrive/database/repository/student"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every handler the router needs.
type HandlerBundle struct {
	StudentRepo studentRepo.StudentRepository

	// Student endpoints.
	RegisterStudentHandler        gin.HandlerFunc
	AuthenticateStudentHandler    gin.HandlerFunc
	GetStudentProfileHandler      gin.HandlerFunc
	AddSavedAddressHandler        gin.HandlerFunc
	RevokeStudentAuthTokenHandler gin.HandlerFunc

	Booking   *BookingHandler
	Session   *SessionHandler
	Directory *DirectoryHandler
	Admin     *AdminHandler
}
