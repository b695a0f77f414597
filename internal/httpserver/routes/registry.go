package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuspage/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

// Scope selects where a registrar is mounted.
type Scope int

const (
	// ScopeAPI mounts under deps.APIPrefix.
	ScopeAPI Scope = iota
	// ScopeRoot mounts at the server root (probes).
	ScopeRoot
)

type entry struct {
	scope Scope
	reg   Registrar
	mws   []Middleware
}

var registry []entry

// Register adds an API registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{scope: ScopeAPI, reg: reg, mws: mws})
}

// RegisterRoot adds a registrar mounted outside the API prefix.
func RegisterRoot(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{scope: ScopeRoot, reg: reg, mws: mws})
}

// RegisterAll mounts every registrar. Called once from httpserver.NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	api := r
	if d.APIPrefix != "" {
		api = chi.NewRouter()
		r.Mount(d.APIPrefix, api)
	}

	for _, e := range registry {
		target := api
		if e.scope == ScopeRoot {
			target = r
		}
		if len(e.mws) > 0 {
			target = target.With(e.mws...)
		}
		e.reg(target, d)
	}
}
