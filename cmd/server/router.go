package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gabinete-digital/gabinete-api/internal/api"
	apiMiddleware "github.com/gabinete-digital/gabinete-api/internal/api/middleware"
)

// Entities whose create route is reachable without a token, so the first
// gabinete and its first usuario can be registered.
var publicCreate = map[string]bool{
	"gabinete": true,
	"usuario":  true,
}

// Entities whose listing is reachable without a token.
var publicList = map[string]bool{
	"gabinete-tipo": true,
}

// baseMiddleware is the chain every request goes through. Trace runs before
// Recover so panic logs carry the trace id.
func (app *application) baseMiddleware() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		apiMiddleware.TraceMiddleware,
		apiMiddleware.Recover(app.responder),
		apiMiddleware.CORS(app.config.CORS.AllowedOrigin),
	}
}

// setupRouter creates the router with every middleware and route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(app.baseMiddleware()...)

	fallback := api.NewFallbackHandler(app.responder)
	r.NotFound(fallback.NotFound)
	r.MethodNotAllowed(fallback.MethodNotAllowed)

	authHandler := api.NewAuthHandler(app.loginService, app.responder)
	uploadHandler := api.NewUploadHandler(app.uploader, app.responder)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.responder)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		for _, h := range app.entities {
			path := "/" + h.Definition().Path
			if publicCreate[h.Definition().Path] {
				r.Post(path, h.Create)
			}
			if publicList[h.Definition().Path] {
				r.Get(path, h.List)
			}
		}

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/upload", uploadHandler.Upload)
			r.Delete("/upload", uploadHandler.Delete)

			for _, h := range app.entities {
				registerEntityRoutes(r, h)
			}
		})
	})

	r.Get("/health", fallback.Health)

	return r
}

// registerEntityRoutes mounts the protected CRUD routes of one entity.
// Tenant entities list by gabinete and read single records under /detalhe.
func registerEntityRoutes(r chi.Router, h *api.EntityHandler) {
	def := h.Definition()
	path := "/" + def.Path

	if !publicCreate[def.Path] {
		r.Post(path, h.Create)
	}
	r.Put(path+"/{id}", h.Update)
	r.Delete(path+"/{id}", h.Delete)

	if def.Tenant() {
		r.Get(path+"/{gabinete}", h.List)
		r.Get(path+"/detalhe/{id}", h.Get)
		return
	}

	if !publicList[def.Path] {
		r.Get(path, h.List)
	}
	r.Get(path+"/{id}", h.Get)
}
