package handlers

import (
	"net/http"

	"hrms/config"
	"hrms/middleware"
	"hrms/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

// NewRouter wires the full HTTP surface. Everything under /api except the
// login endpoint requires an authenticated operator.
func NewRouter(cfg *config.Config, db *gorm.DB) http.Handler {
	employeeService := service.NewEmployeeService(db)
	attendanceService := service.NewAttendanceService(db)
	dashboardService := service.NewDashboardService(db)

	authHandler := NewAuthHandler(cfg, db)
	employeeHandler := NewEmployeeHandler(employeeService, attendanceService)
	attendanceHandler := NewAttendanceHandler(attendanceService)
	dashboardHandler := NewDashboardHandler(dashboardService)

	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/login", authHandler.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.Auth(db))

		r.Post("/api/logout", authHandler.Logout)

		r.Get("/api/dashboard", dashboardHandler.Summary)

		r.Get("/api/employees", employeeHandler.List)
		r.Post("/api/employees", employeeHandler.Create)
		r.Get("/api/employees/{id}", employeeHandler.Get)
		r.Put("/api/employees/{id}", employeeHandler.Update)
		r.Delete("/api/employees/{id}", employeeHandler.Delete)
		r.Get("/api/employees/{id}/attendance", employeeHandler.Attendance)

		r.Get("/api/attendance", attendanceHandler.List)
		r.Post("/api/attendance", attendanceHandler.Mark)
		r.Get("/api/attendance/export", attendanceHandler.Export)
	})

	return router
}
