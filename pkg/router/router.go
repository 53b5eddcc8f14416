package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	loginapi "github.com/redcore/yabutech-api/pkg/login/api"
	roleapi "github.com/redcore/yabutech-api/pkg/role/api"
	userapi "github.com/redcore/yabutech-api/pkg/user/api"
)

// Config holds the handlers and middleware needed to set up routes
type Config struct {
	LoginHandle *loginapi.Handle
	RoleHandle  *roleapi.Handle
	UserHandle  *userapi.Handle

	// AuthMiddleware guards the protected route group
	AuthMiddleware func(http.Handler) http.Handler

	// AllowedOrigins for the SPA front-end; empty disables CORS handling
	AllowedOrigins []string
}

// New builds the API router. Login, registration and the role list are
// public; everything else sits behind the bearer-token guard.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
			AllowCredentials: true,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		// Public routes
		cfg.LoginHandle.RegisterRoutes(r)
		cfg.RoleHandle.RegisterPublicRoutes(r)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMiddleware)
			cfg.LoginHandle.RegisterProtectedRoutes(r)
			cfg.RoleHandle.RegisterRoutes(r)
			cfg.UserHandle.RegisterRoutes(r)
		})
	})

	return r
}
