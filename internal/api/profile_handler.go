package api

import (
	"fmt"
	"net/http"

	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the per-user profile.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpdateProfileRequest struct {
	HeightCm      float64  `json:"height_cm"`
	BirthDate     string   `json:"birth_date"`
	Gender        string   `json:"gender" binding:"omitempty,oneof=male female other"`
	ActivityLevel string   `json:"activity_level" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	Goals         []string `json:"goals"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, service.ProfileInput{
		HeightCm:      req.HeightCm,
		BirthDate:     req.BirthDate,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Goals:         req.Goals,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
