package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/handler/http/middleware"
	"github.com/cmlabs-hris/certtracker/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	FrontendURL string
	Env         string
	Version     string
	LogLevel    slog.Level
}

type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Company      CompanyHandler
	Employee     EmployeeHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

// NewRouter mounts every route. users backs the per-request actor reload.
func NewRouter(cfg RouterConfig, jwtService jwt.Service, users user.UserRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "certtracker"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/demo", h.Auth.Demo)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Route("/notifications", func(r chi.Router) {
			// SSE authenticates with its own short-lived token.
			r.Get("/stream", h.Notification.Stream)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(users))
				r.Get("/", h.Notification.Feed)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(users))

			r.Get("/me", h.User.Me)

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/", h.Company.GetMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/manager-codes", h.Company.ListManagerCodes)
					r.Post("/manager-codes", h.Company.CreateManagerCode)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.User.List)
				r.Put("/{id}/role", h.User.ChangeRole)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.With(middleware.RequireCapability(user.CapabilityManageEmployees)).Post("/", h.Employee.Create)
				r.Delete("/{id}", h.Employee.Delete)

				r.Route("/{id}/certifications", func(r chi.Router) {
					r.With(middleware.RequireCapability(user.CapabilityManageCertifications)).Post("/", h.Employee.AddCertification)
					r.Delete("/{certID}", h.Employee.DeleteCertification)
				})
			})

			r.With(middleware.RequireCapability(user.CapabilityManageCertifications)).
				Put("/certifications/{id}", h.Employee.EditCertification)

			r.Get("/dashboard", h.Dashboard.GetDashboard)
		})
	})
	return r
}
