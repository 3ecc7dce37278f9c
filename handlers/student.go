package handlers

import (
	"net/http"

	"blissdrive/models"
	"blissdrive/services/student"
	"blissdrive/utils"

	"github.com/gin-gonic/gin"
)

var studentService student.StudentService

// SetStudentService injects the student service used by these handlers.
func SetStudentService(svc student.StudentService) {
	studentService = svc
}

// RegisterStudentHandler handles POST /api/students/register.
func RegisterStudentHandler(c *gin.Context) {
	var reg models.StudentRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	resp, err := studentService.Register(reg)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateStudentHandler handles POST /api/students/login.
func AuthenticateStudentHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	resp, err := studentService.Authenticate(input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStudentProfileHandler returns the authenticated student's profile.
func GetStudentProfileHandler(c *gin.Context) {
	studentID := c.GetString("studentID")
	stu, err := studentService.GetByID(studentID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Student not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, stu)
}

// AddSavedAddressHandler stores a pickup address on the student's profile.
func AddSavedAddressHandler(c *gin.Context) {
	studentID := c.GetString("studentID")
	var input struct {
		Label   string `json:"label"`
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid address payload", err.Error())
		return
	}

	stu, err := studentService.AddSavedAddress(studentID, input.Label, input.Address)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to save address", err.Error())
		return
	}
	c.JSON(http.StatusOK, stu)
}

// RevokeStudentAuthTokenHandler signs the student out everywhere.
func RevokeStudentAuthTokenHandler(c *gin.Context) {
	studentID := c.GetString("studentID")
	if err := studentService.RevokeAuthToken(studentID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to revoke token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}
