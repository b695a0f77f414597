package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuspage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/mw"
)

func init() { Register(registerServices) }

func registerServices(r chi.Router, d deps.Deps) {
	r.Route("/services", func(r chi.Router) {
		r.Get("/", handlers.ListServices(d))
		r.Get("/{id}", handlers.GetService(d))

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin(d.Gate, d.Logger))
			r.Post("/", handlers.CreateService(d))
			r.Put("/{id}", handlers.UpdateService(d))
			r.Delete("/{id}", handlers.DeleteService(d))
		})
	})
}
