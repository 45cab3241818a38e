package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"dashboard/internal/mw"
	"dashboard/internal/service"
)

type Deps struct {
	Auth     service.Authenticator
	Sessions *service.SessionService
	Spaces   *service.WorkspaceService
}

func NewRouter(d Deps) http.Handler {
	loader := d.Spaces.Loader()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(NotFoundHandler())
	r.MethodNotAllowed(MethodNotAllowedHandler())

	// Public routes
	r.Get("/healthz", HealthHandler())
	r.Post("/api/auth/register", RegisterHandler(d.Auth, d.Sessions))
	r.Post("/api/auth/login", LoginHandler(d.Auth, d.Sessions))
	r.Get("/api/sidebar", SidebarHandler(loader))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(d.Sessions))

		r.Get("/api/auth/me", MeHandler())
		r.Post("/api/auth/logout", LogoutHandler(d.Sessions, d.Spaces))

		r.Get("/api/preferences", GetPreferencesHandler())
		r.Put("/api/preferences", PutPreferencesHandler(d.Sessions))
		r.Post("/api/preferences/theme/toggle", ToggleThemeHandler(d.Sessions))
		r.Post("/api/preferences/sidebar/toggle", ToggleSidebarHandler(d.Sessions))

		r.Get("/api/dashboard", DashboardHandler(loader))
		r.Get("/api/overview/stats", OverviewStatsHandler(loader))
		r.Get("/api/charts/{chart}", ChartHandler(loader))

		TableRoutes(r, d.Spaces, service.OrdersTable)
		TableRoutes(r, d.Spaces, service.ProductsTable)
		TableRoutes(r, d.Spaces, service.ClientsTable)
	})

	return r
}
