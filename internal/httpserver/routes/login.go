package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuspage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/mw"
)

func init() { Register(registerLogin) }

func registerLogin(r chi.Router, d deps.Deps) {
	throttle := d.LoginThrottle
	throttle.TrustProxy = d.TrustProxy
	r.With(mw.Throttle(throttle)).Post("/login", handlers.Login(d))
}
