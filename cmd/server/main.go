package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/internal/api"
	"fittrack/internal/config"
	"fittrack/internal/repository"
	"fittrack/internal/repository/memory"
	mongorepo "fittrack/internal/repository/mongo"
	"fittrack/internal/service"
	"fittrack/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting FitTrack server...")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Repositories ---
	var (
		userRepo        repository.UserRepository
		profileRepo     repository.ProfileRepository
		photoRepo       repository.PhotoRepository
		weightRepo      repository.WeightRepository
		measurementRepo repository.MeasurementRepository
		workoutRepo     repository.WorkoutRepository
	)

	switch cfg.Database.Driver {
	case "mongo":
		dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongorepo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			mongorepo.EnsureUserIndexes(ctx, appDB.Collection("users"))
			mongorepo.EnsureProfileIndexes(ctx, appDB.Collection("profiles"))
			mongorepo.EnsurePhotoIndexes(ctx, appDB.Collection("progress_photos"))
			mongorepo.EnsureWeightIndexes(ctx, appDB.Collection("weight_entries"))
			mongorepo.EnsureMeasurementIndexes(ctx, appDB.Collection("body_measurements"))
			mongorepo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
			log.Println("Index creation process completed.")
		}()

		userRepo = mongorepo.NewMongoUserRepository(appDB)
		profileRepo = mongorepo.NewMongoProfileRepository(appDB)
		photoRepo = mongorepo.NewMongoPhotoRepository(appDB)
		weightRepo = mongorepo.NewMongoWeightRepository(appDB)
		measurementRepo = mongorepo.NewMongoMeasurementRepository(appDB)
		workoutRepo = mongorepo.NewMongoWorkoutRepository(appDB)

	case "memory":
		log.Println("Using in-memory repositories (data is not persisted).")
		userRepo = memory.NewMemoryUserRepository()
		profileRepo = memory.NewMemoryProfileRepository()
		photoRepo = memory.NewMemoryPhotoRepository()
		weightRepo = memory.NewMemoryWeightRepository()
		measurementRepo = memory.NewMemoryMeasurementRepository()
		workoutRepo = memory.NewMemoryWorkoutRepository()

	default:
		log.Fatalf("FATAL: Unknown database driver %q", cfg.Database.Driver)
	}

	// --- Object storage ---
	var fileStorage storage.FileStorage
	switch cfg.Storage.Provider {
	case "s3":
		fileStorage, err = storage.NewS3Storage(cfg.Storage)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	case "memory":
		log.Println("Using in-memory object storage (URLs are not usable).")
		fileStorage = storage.NewMemoryStorage()
	default:
		log.Fatalf("FATAL: Unknown storage provider %q", cfg.Storage.Provider)
	}

	// --- Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	photoService := service.NewPhotoService(photoRepo, fileStorage, storage.NewKeyGenerator())
	profileService := service.NewProfileService(profileRepo)
	measurementService := service.NewMeasurementService(weightRepo, measurementRepo)
	workoutService := service.NewWorkoutService(workoutRepo)
	statsService := service.NewStatsService(weightRepo, workoutRepo, profileRepo)

	var verifier service.TokenVerifier
	switch cfg.Auth.Provider {
	case "jwt":
		verifier = authService
	case "static":
		log.Println("Using static token verifier (development only).")
		verifier = service.NewStaticVerifier(cfg.Auth.StaticTokens)
	default:
		log.Fatalf("FATAL: Unknown auth provider %q", cfg.Auth.Provider)
	}

	// --- HTTP ---
	router := gin.Default()

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, verifier, authService, photoService, profileService, measurementService, workoutService, statsService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
