package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/idempotency"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         *zap.Logger
	Audit       *audit.Dispatcher
	AuditLogger *audit.Logger
	Idempotency idempotency.Store
	RateLimiter *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	blackoutRepo := infraRepo.NewBlackoutGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)

	loc := timezone.Location(cfg.Timezone)
	policy := ucAppointment.Policy{
		Location:    loc,
		MinAdvance:  time.Duration(cfg.MinAdvanceMinutes) * time.Minute,
		StepMinutes: cfg.SlotStepMinutes,
	}

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(
		scheduleRepo,
		blackoutRepo,
		appointmentRepo,
		serviceRepo,
		policy,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		blackoutRepo,
		appointmentRepo,
		serviceRepo,
		d.Audit,
		policy,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		d.Audit,
		policy,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	revenueUC := ucAppointment.NewGetRevenue(appointmentRepo, policy)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		getAvailabilityUC,
		createAppointmentUC,
		appointmentRepo,
		serviceRepo,
		d.Idempotency,
		d.Log,
	)
	publicHandler.CheckEmailDomain = cfg.IsProduction()

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		transitionAppointmentUC,
		d.Log,
	)

	workingHoursHandler := handlers.NewWorkingHoursHandler(scheduleRepo, d.Log)
	blackoutHandler := handlers.NewBlackoutHandler(blackoutRepo, loc, d.Log)
	revenueHandler := handlers.NewRevenueHandler(revenueUC, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger, d.Log)
	healthHandler := handlers.NewHealthHandler(d.DB)

	r.GET("/health", healthHandler.Get)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		if d.RateLimiter != nil {
			publicAPI.Use(d.RateLimiter.Middleware())
		}
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/providers/:id/availability", publicHandler.Availability)
			publicAPI.POST("/providers/:id/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// PROVIDER
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/working-hours", workingHoursHandler.Get)
			secured.PUT("/working-hours", workingHoursHandler.Update)

			secured.GET("/blackouts", blackoutHandler.List)
			secured.POST("/blackouts", blackoutHandler.Create)
			secured.DELETE("/blackouts/:id", blackoutHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/revenue", revenueHandler.Get)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
