package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vietsport/eprofile/internal/middleware"
)

// NewRouter wires the API routes with logging, metrics and bearer-token
// authentication.
//
// Routes:
//
//	POST /api/login                      → authHandler.Login
//	POST /api/registry                   → authHandler.Registry
//	POST /api/signOut                    → authHandler.SignOut  (protected)
//	GET  /api/{collection}               → recordsHandler.List  (protected)
//	POST /api/{collection}               → recordsHandler.Create (protected)
//	GET  /api/{collection}/{id}          → recordsHandler.Get    (protected)
//	PUT  /api/{collection}/{id}          → recordsHandler.Update (protected)
//	DELETE /api/{collection}/{id}        → recordsHandler.Delete (protected)
//	GET  /metrics                        → prometheus handler
func NewRouter(
	authHandler *AuthHandler,
	recordsHandler *RecordsHandler,
	logger *zap.Logger,
	jwtSecret []byte,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithMetrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/login", authHandler.Login)
		r.Post("/registry", authHandler.Registry)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(jwtSecret))

			r.Post("/signOut", authHandler.SignOut)

			r.Route("/{collection}", func(r chi.Router) {
				r.Get("/", recordsHandler.List)
				r.Post("/", recordsHandler.Create)
				r.Get("/{id}", recordsHandler.Get)
				r.Put("/{id}", recordsHandler.Update)
				r.Delete("/{id}", recordsHandler.Delete)
			})
		})
	})

	return r
}
