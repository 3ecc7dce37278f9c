package handlers

import (
	"net/http"

	companionRepo "blissdrive/database/repository/companion"
	locationRepo "blissdrive/database/repository/location"
	"blissdrive/utils"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the public listings the booking flow needs:
// active safety companions and pickup locations.
type DirectoryHandler struct {
	Companions companionRepo.CompanionRepository
	Locations  locationRepo.LocationRepository
}

func NewDirectoryHandler(companions companionRepo.CompanionRepository, locations locationRepo.LocationRepository) *DirectoryHandler {
	return &DirectoryHandler{Companions: companions, Locations: locations}
}

func (h *DirectoryHandler) GetActiveCompanions(c *gin.Context) {
	companions, err := h.Companions.GetActive()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch companions", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"companions": companions})
}

func (h *DirectoryHandler) GetLocations(c *gin.Context) {
	locations, err := h.Locations.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch locations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}
