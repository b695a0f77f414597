package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuspage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/mw"
)

func init() {
	Register(registerHealth)
	RegisterRoot(registerProbes)
}

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/health", handlers.Healthz(d))
}

func registerProbes(r chi.Router, d deps.Deps) {
	probes := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	probes.Get("/healthz", handlers.Healthz(d))
	probes.Get("/readyz", handlers.Readyz(d))
}
