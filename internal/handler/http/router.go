package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/vtab-hr/hr-backend-go/internal/handler/http/middleware"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	employeeHandler EmployeeHandler,
	assetHandler AssetHandler,
	adminHandler AdminHandler,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.NotRevoked(jwtService))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/checkin", attendanceHandler.CheckIn)
				r.Post("/checkout", attendanceHandler.CheckOut)
				r.Get("/status/{employeeID}", attendanceHandler.Status)
				r.Get("/{employeeID}/{year}/{month}", attendanceHandler.Monthly)
				r.Post("/team-month", attendanceHandler.TeamMonthly)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/employee/{employeeID}", leaveHandler.ListByEmployee)
				r.Post("/{leaveID}/cancel", leaveHandler.Cancel)
				r.Get("/balance/{employeeID}", leaveHandler.Balance)
				r.Post("/on-leave-today", leaveHandler.OnLeaveToday)
				r.Post("/team", leaveHandler.TeamLeaves)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Post("/bulk", employeeHandler.BulkCreate)
				r.Get("/{employeeID}", employeeHandler.Get)
				r.Put("/{employeeID}", employeeHandler.Update)
				r.Delete("/{employeeID}", employeeHandler.Delete)
			})

			r.Route("/assets", func(r chi.Router) {
				r.Get("/", assetHandler.List)
				r.Post("/", assetHandler.Create)
				r.Get("/employee/{employeeID}", assetHandler.ByEmployee)
				r.Patch("/{assetID}", assetHandler.Update)
				r.Delete("/{assetID}", assetHandler.Delete)
			})

			r.Route("/admin/jobs", func(r chi.Router) {
				r.Post("/auto-close", adminHandler.RunAutoClose)
				r.Post("/mark-absent", adminHandler.RunMarkAbsent)
			})
		})
	})
	return r
}
