package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/cache"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/config"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/controllers"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/handlers"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/middlewares"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/repositories"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// The booking frontend origin is deployment-specific; localhost covers
	// local development.
	allowedOrigins := []string{"http://localhost:3000"}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Repositories
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	timeBlockRepo := repositories.NewTimeBlockRepository(cache)
	clinicalNoteRepo := repositories.NewClinicalNoteRepository(cache)
	practitionerRepo := repositories.NewPractitionerRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	// Services
	practitionerService := services.NewPractitionerService(practitionerRepo)
	patientService := services.NewPatientService(patientRepo)
	actorService := services.NewActorService(practitionerRepo, patientRepo)
	availabilityService := services.NewAvailabilityService(appointmentRepo, timeBlockRepo, config)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	timeBlockService := services.NewTimeBlockService(timeBlockRepo)
	clinicalNoteService := services.NewClinicalNoteService(clinicalNoteRepo, appointmentRepo)
	userService := services.NewUserService(userRepo)

	// Handlers
	scheduleHandlers := controllers.ScheduleHandlers{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Appointment:  handlers.NewAppointmentHandler(appointmentService, actorService),
		TimeBlock:    handlers.NewTimeBlockHandler(timeBlockService, actorService),
		ClinicalNote: handlers.NewClinicalNoteHandler(clinicalNoteService, actorService),
		Practitioner: handlers.NewPractitionerHandler(practitionerService),
		Patient:      handlers.NewPatientHandler(patientService),
	}

	controllers.SetupScheduleRoutes(router, scheduleHandlers)

	authController := controllers.NewAuthController(handlers.NewAuthHandler(userService))
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
