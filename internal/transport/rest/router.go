package rest

import (
	"log/slog"

	"github.com/frahmantamala/vacation-management/internal/auth"
	"github.com/frahmantamala/vacation-management/internal/profile"
	"github.com/frahmantamala/vacation-management/internal/project"
	"github.com/frahmantamala/vacation-management/internal/reference"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/internal/transport/middleware"
	"github.com/frahmantamala/vacation-management/internal/transport/swagger"
	"github.com/frahmantamala/vacation-management/internal/user"
	"github.com/frahmantamala/vacation-management/internal/vacation"
	"github.com/frahmantamala/vacation-management/internal/web"
	"github.com/go-chi/chi"
)

// Handlers groups everything the router mounts. A nil handler leaves its routes out.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Vacation  *vacation.Handler
	Project   *project.Handler
	Reference *reference.Handler
	Profile   *profile.Handler
	Web       *web.Handler
}

func RegisterAllRoutes(router *chi.Mux, db Pinger, sessions *auth.SessionManager, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	requireSession := auth.RequireSessionJSON(transport.NewBaseHandler(logger))

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(auth.SessionMiddleware(sessions))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Handle(swagger.SpecPath, swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	// Session provider endpoints
	if h.Auth != nil {
		router.Handle("/api/auth/*", h.Auth)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Project != nil {
			r.Get("/projects", h.Project.ListProjects)
			r.Get("/projects/{name}", h.Project.GetProject)
		}
		if h.Reference != nil {
			r.Get("/reference/{kind}", h.Reference.List)
		}

		r.Group(func(pr chi.Router) {
			pr.Use(requireSession)

			if h.Profile != nil {
				pr.Get("/me", h.Profile.Me)
			}
			if h.User != nil {
				pr.Get("/users", h.User.ListUsers)
				pr.Get("/users/{id}", h.User.GetUser)
			}
			if h.Vacation != nil {
				pr.Route("/vacations", func(vr chi.Router) {
					vr.Get("/", h.Vacation.ListVacations)
					vr.Post("/", h.Vacation.CreateVacation)
					vr.Get("/{id}", h.Vacation.GetVacation)
					vr.Put("/{id}", h.Vacation.UpdateVacation)
					vr.Delete("/{id}", h.Vacation.DeleteVacation)
				})
			}
		})
	})

	if h.Web != nil {
		router.Get("/", h.Web.Home)
		router.Get("/signin", h.Web.SignIn)
		router.Get("/employees", h.Web.Employees)
		router.Get("/projects/{name}", h.Web.Project)
		router.NotFound(h.Web.NotFound)
	}

	// Profile pages sit behind the session gate
	if h.Profile != nil {
		router.Route("/profile", func(r chi.Router) {
			r.Use(auth.GateMiddleware)

			r.Get("/", h.Profile.Redirect)
			r.Get("/{identifier}", h.Profile.Show)
			r.Post("/{identifier}", h.Profile.Update)
			r.Post("/{identifier}/vacations", h.Profile.CreateVacation)
			r.Post("/{identifier}/vacations/{id}/delete", h.Profile.DeleteVacation)
		})
	}
}
