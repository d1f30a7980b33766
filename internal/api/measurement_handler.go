package api

import (
	"fmt"
	"net/http"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dateFormat is the wire format for calendar dates.
const dateFormat = "2006-01-02"

// MeasurementHandler serves weight entries and body measurements.
type MeasurementHandler struct {
	measurementService service.MeasurementService
}

// NewMeasurementHandler creates a new MeasurementHandler.
func NewMeasurementHandler(measurementService service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurementService: measurementService}
}

// --- Request Structs ---

type LogWeightRequest struct {
	WeightKg   float64  `json:"weight_kg" binding:"required"`
	BodyFatPct *float64 `json:"body_fat_pct"`
	EntryDate  string   `json:"entry_date" binding:"required"`
	Notes      string   `json:"notes"`
}

type LogMeasurementRequest struct {
	Date         string            `json:"date" binding:"required"`
	Values       domain.BodyValues `json:"values"`
	BodyFatPct   *float64          `json:"body_fat_pct"`
	MuscleMassKg *float64          `json:"muscle_mass_kg"`
	Notes        string            `json:"notes"`
}

// --- Handler Methods ---

func (h *MeasurementHandler) LogWeight(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req LogWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entryDate, err := time.Parse(dateFormat, req.EntryDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "entry_date must be a YYYY-MM-DD date")
		return
	}

	entry, err := h.measurementService.LogWeight(c.Request.Context(), userID, service.WeightInput{
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
		EntryDate:  entryDate,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *MeasurementHandler) ListWeights(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	from, to, err := dateRangeQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.measurementService.ListWeights(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weights": entries})
}

func (h *MeasurementHandler) DeleteWeight(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Weight entry not found")
		return
	}

	if err := h.measurementService.DeleteWeight(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MeasurementHandler) LogMeasurement(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req LogMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be a YYYY-MM-DD date")
		return
	}

	m, err := h.measurementService.LogMeasurement(c.Request.Context(), userID, service.MeasurementInput{
		Date:         date,
		Values:       req.Values,
		BodyFatPct:   req.BodyFatPct,
		MuscleMassKg: req.MuscleMassKg,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	from, to, err := dateRangeQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	measurements, err := h.measurementService.ListMeasurements(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": measurements})
}

func (h *MeasurementHandler) DeleteMeasurement(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Measurement not found")
		return
	}

	if err := h.measurementService.DeleteMeasurement(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// dateRangeQuery parses optional from/to query params as YYYY-MM-DD dates.
// The to bound is pushed to the end of its day so the range is inclusive.
func dateRangeQuery(c *gin.Context) (from, to time.Time, err error) {
	if s := c.Query("from"); s != "" {
		from, err = time.Parse(dateFormat, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from must be a YYYY-MM-DD date")
		}
	}
	if s := c.Query("to"); s != "" {
		to, err = time.Parse(dateFormat, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to must be a YYYY-MM-DD date")
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
