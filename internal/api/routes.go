package api

import (
	"net/http"

	"fittrack/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes wires handlers, middleware and CORS onto the router.
func SetupRoutes(
	router *gin.Engine,
	verifier service.TokenVerifier,
	authService service.AuthService,
	photoService service.PhotoService,
	profileService service.ProfileService,
	measurementService service.MeasurementService,
	workoutService service.WorkoutService,
	statsService service.StatsService,
) {
	authHandler := NewAuthHandler(authService)
	photoHandler := NewPhotoHandler(photoService)
	profileHandler := NewProfileHandler(profileService)
	measurementHandler := NewMeasurementHandler(measurementService)
	workoutHandler := NewWorkoutHandler(workoutService)
	statsHandler := NewStatsHandler(statsService)

	// Browser clients call the photo endpoints cross-origin, so preflight
	// must succeed for any origin. cors answers OPTIONS itself.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Authorization", "Content-Type", "X-Client-Info"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Wrong verb on a known path is a 405, with the same JSON error shape
	// as everything else.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	authMiddleware := AuthMiddleware(verifier)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// The photo pipeline endpoints keep their historical top-level paths.
	router.POST("/upload-progress-photo", authMiddleware, photoHandler.UploadProgressPhoto)
	router.POST("/get-photo-url", authMiddleware, photoHandler.GetPhotoURL)

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := currentUserID(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		photoGroup := protected.Group("/photos")
		{
			photoGroup.GET("", photoHandler.ListPhotos)
			photoGroup.DELETE("/:id", photoHandler.DeletePhoto)
		}

		weightGroup := protected.Group("/weights")
		{
			weightGroup.POST("", measurementHandler.LogWeight)
			weightGroup.GET("", measurementHandler.ListWeights)
			weightGroup.DELETE("/:id", measurementHandler.DeleteWeight)
		}

		measurementGroup := protected.Group("/measurements")
		{
			measurementGroup.POST("", measurementHandler.LogMeasurement)
			measurementGroup.GET("", measurementHandler.ListMeasurements)
			measurementGroup.DELETE("/:id", measurementHandler.DeleteMeasurement)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.LogWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.POST("/:id/complete", workoutHandler.CompleteWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		protected.GET("/stats", statsHandler.GetStats)
	}
}
