package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/westcutz/booking-web/internal/absence"
	"github.com/westcutz/booking-web/internal/api"
	"github.com/westcutz/booking-web/internal/audit"
	"github.com/westcutz/booking-web/internal/config"
	"github.com/westcutz/booking-web/internal/flow"
	"github.com/westcutz/booking-web/internal/gate"
	"github.com/westcutz/booking-web/internal/handlers"
	"github.com/westcutz/booking-web/internal/middleware"
	"github.com/westcutz/booking-web/internal/store"
	ucDashboard "github.com/westcutz/booking-web/internal/usecase/dashboard"
)

func RegisterRoutes(r *gin.Engine, apiClient *api.Client, st store.Store, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditSink := audit.NewSink(log.Logger)
	auditDispatcher := audit.NewDispatcher(auditSink)

	sessionGate := gate.New(st, apiClient, cfg.SessionSecret)
	absenceOverlay := absence.NewOverlay(st)
	flowSessions := flow.NewRegistry(apiClient)

	// ======================================================
	// USE CASES
	// ======================================================
	dash := ucDashboard.New(apiClient, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(flowSessions)
	adminHandler := handlers.NewAdminHandler(sessionGate, dash, absenceOverlay, auditDispatcher)

	// ======================================================
	// PUBLIC API
	// ======================================================
	publicAPI := r.Group("/api")
	{
		publicAPI.GET("/services", bookingHandler.ListServices)
		publicAPI.GET("/barbers", bookingHandler.ListBarbers)

		bookingAPI := publicAPI.Group("/booking")
		{
			bookingAPI.POST("/session", bookingHandler.StartSession)
			bookingAPI.GET("/session", bookingHandler.State)
			bookingAPI.POST("/service", bookingHandler.SetService)
			bookingAPI.POST("/date", bookingHandler.SelectDate)
			bookingAPI.POST("/slot", bookingHandler.SelectSlot)
			bookingAPI.POST("/back", bookingHandler.Back)
			bookingAPI.POST("/submit", bookingHandler.Submit)
			bookingAPI.POST("/reset", bookingHandler.Reset)
		}
	}

	// ======================================================
	// ADMIN API
	// ======================================================
	adminAPI := r.Group("/api/admin")
	{
		adminAPI.POST("/login", adminHandler.Login)
		adminAPI.GET("/session", adminHandler.Session)

		secured := adminAPI.Group("/")
		secured.Use(middleware.AdminGate(sessionGate))
		{
			secured.POST("/logout", adminHandler.Logout)

			secured.GET("/bookings", adminHandler.ListByDate)
			secured.GET("/bookings/all", adminHandler.ListAll)
			secured.POST("/bookings/refresh", adminHandler.Refresh)
			secured.DELETE("/bookings/:id", adminHandler.Cancel)

			secured.GET("/stats", adminHandler.Stats)

			secured.GET("/absence/:barber", adminHandler.AbsenceDates)
			secured.POST("/absence", adminHandler.ToggleAbsence)
			secured.DELETE("/absence/:barber/:date", adminHandler.ClearAbsence)
		}
	}
}
