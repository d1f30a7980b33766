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

// WorkoutHandler serves workout logging.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type WorkoutSetRequest struct {
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weight_kg"`
	RestSec   int     `json:"rest_sec"`
	Completed bool    `json:"completed"`
}

type WorkoutExerciseRequest struct {
	Name  string              `json:"name" binding:"required"`
	Order int                 `json:"order"`
	Sets  []WorkoutSetRequest `json:"sets"`
}

type LogWorkoutRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Date        string                   `json:"date" binding:"required"`
	DurationMin int                      `json:"duration_min"`
	Exercises   []WorkoutExerciseRequest `json:"exercises"`
	Notes       string                   `json:"notes"`
}

func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be a YYYY-MM-DD date")
		return
	}

	exercises := make([]domain.WorkoutExercise, 0, len(req.Exercises))
	for _, ex := range req.Exercises {
		sets := make([]domain.WorkoutSet, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			sets = append(sets, domain.WorkoutSet{
				Reps:      set.Reps,
				WeightKg:  set.WeightKg,
				RestSec:   set.RestSec,
				Completed: set.Completed,
			})
		}
		exercises = append(exercises, domain.WorkoutExercise{
			Name:  ex.Name,
			Order: ex.Order,
			Sets:  sets,
		})
	}

	workout, err := h.workoutService.LogWorkout(c.Request.Context(), userID, service.WorkoutInput{
		Name:        req.Name,
		Date:        date,
		DurationMin: req.DurationMin,
		Exercises:   exercises,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Workout not found")
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
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

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Workout not found")
		return
	}

	if err := h.workoutService.CompleteWorkout(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": true})
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Workout not found")
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
