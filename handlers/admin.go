package handlers

import (
	"net/http"

	bookingRepo "blissdrive/database/repository/booking"
	companionRepo "blissdrive/database/repository/companion"
	couponRepo "blissdrive/database/repository/coupon"
	invoiceRepo "blissdrive/database/repository/invoice"
	locationRepo "blissdrive/database/repository/location"
	reviewRepo "blissdrive/database/repository/review"
	"blissdrive/models"
	"blissdrive/services/student"
	"blissdrive/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler serves the dashboard: students, bookings, coupons, locations,
// payments and safety companions.
type AdminHandler struct {
	Students   student.StudentService
	Bookings   bookingRepo.BookingRepository
	Coupons    couponRepo.CouponRepository
	Locations  locationRepo.LocationRepository
	Companions companionRepo.CompanionRepository
	Invoices   invoiceRepo.InvoiceRepository
	Reviews    reviewRepo.ReviewRepository
}

func NewAdminHandler(
	students student.StudentService,
	bookings bookingRepo.BookingRepository,
	coupons couponRepo.CouponRepository,
	locations locationRepo.LocationRepository,
	companions companionRepo.CompanionRepository,
	invoices invoiceRepo.InvoiceRepository,
	reviews reviewRepo.ReviewRepository,
) *AdminHandler {
	return &AdminHandler{
		Students:   students,
		Bookings:   bookings,
		Coupons:    coupons,
		Locations:  locations,
		Companions: companions,
		Invoices:   invoices,
		Reviews:    reviews,
	}
}

// --- Students ---

func (h *AdminHandler) GetAllStudentsHandler(c *gin.Context) {
	students, err := h.Students.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch students", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *AdminHandler) DeleteStudentHandler(c *gin.Context) {
	if err := h.Students.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete student", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// --- Bookings ---

func (h *AdminHandler) GetAllBookingsHandler(c *gin.Context) {
	bookings, err := h.Bookings.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateBookingStatusHandler approves, completes or cancels a booking.
func (h *AdminHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required,oneof=pending approved completed cancelled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status payload", err.Error())
		return
	}
	if err := h.Bookings.UpdateStatus(c.Param("id"), input.Status); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": input.Status})
}

// --- Coupons ---

func (h *AdminHandler) CreateCouponHandler(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid coupon payload", err.Error())
		return
	}
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	if err := h.Coupons.Create(&coupon); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create coupon", err.Error())
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (h *AdminHandler) GetAllCouponsHandler(c *gin.Context) {
	coupons, err := h.Coupons.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch coupons", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

func (h *AdminHandler) UpdateCouponHandler(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid coupon payload", err.Error())
		return
	}
	coupon.ID = c.Param("id")
	if err := h.Coupons.Update(&coupon); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update coupon", err.Error())
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (h *AdminHandler) DeleteCouponHandler(c *gin.Context) {
	if err := h.Coupons.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete coupon", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// --- Locations ---

func (h *AdminHandler) CreateLocationHandler(c *gin.Context) {
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid location payload", err.Error())
		return
	}
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	if err := h.Locations.Create(&location); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create location", err.Error())
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (h *AdminHandler) GetAllLocationsHandler(c *gin.Context) {
	locations, err := h.Locations.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch locations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

func (h *AdminHandler) UpdateLocationHandler(c *gin.Context) {
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid location payload", err.Error())
		return
	}
	location.ID = c.Param("id")
	if err := h.Locations.Update(&location); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update location", err.Error())
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h *AdminHandler) DeleteLocationHandler(c *gin.Context) {
	if err := h.Locations.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete location", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// --- Companions ---

func (h *AdminHandler) CreateCompanionHandler(c *gin.Context) {
	var companion models.Companion
	if err := c.ShouldBindJSON(&companion); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid companion payload", err.Error())
		return
	}
	if companion.ID == "" {
		companion.ID = uuid.New().String()
	}
	if err := h.Companions.Create(&companion); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create companion", err.Error())
		return
	}
	c.JSON(http.StatusCreated, companion)
}

func (h *AdminHandler) GetAllCompanionsHandler(c *gin.Context) {
	companions, err := h.Companions.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch companions", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"companions": companions})
}

func (h *AdminHandler) UpdateCompanionHandler(c *gin.Context) {
	var companion models.Companion
	if err := c.ShouldBindJSON(&companion); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid companion payload", err.Error())
		return
	}
	companion.ID = c.Param("id")
	if err := h.Companions.Update(&companion); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update companion", err.Error())
		return
	}
	c.JSON(http.StatusOK, companion)
}

func (h *AdminHandler) DeleteCompanionHandler(c *gin.Context) {
	if err := h.Companions.Delete(c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete companion", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetCompanionReviewsHandler lists reviews left for one companion.
func (h *AdminHandler) GetCompanionReviewsHandler(c *gin.Context) {
	reviews, err := h.Reviews.GetByCompanion(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch reviews", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// --- Payments ---

func (h *AdminHandler) GetAllInvoicesHandler(c *gin.Context) {
	invoices, err := h.Invoices.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch invoices", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}
