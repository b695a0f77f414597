package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/mw"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/render"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
)

// ListServices returns every service. Public.
func ListServices(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := d.Store.List(r.Context())
		if err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}
		render.JSON(w, http.StatusOK, services)
	}
}

// GetService returns one service by id. Public.
func GetService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := serviceID(w, r, d)
		if !ok {
			return
		}

		svc, err := d.Store.Get(r.Context(), id)
		if err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}
		render.JSON(w, http.StatusOK, svc)
	}
}

// CreateService stores a new service and answers 201 with the stored record.
func CreateService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields domain.ServiceFields
		if err := render.DecodeJSON(w, r, &fields); err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}
		if err := fields.ValidateCreate(); err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}

		svc := fields.NewService()
		if err := d.Store.Create(r.Context(), svc); err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}

		d.Logger.Info("service created", serviceLogFields(r, svc)...)
		render.JSON(w, http.StatusCreated, svc)
	}
}

// UpdateService overwrites the provided fields of an existing service.
func UpdateService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := serviceID(w, r, d)
		if !ok {
			return
		}

		var fields domain.ServiceFields
		if err := render.DecodeJSON(w, r, &fields); err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}
		if err := fields.ValidateUpdate(); err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}

		svc, err := d.Store.Update(r.Context(), id, fields)
		if err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}

		d.Logger.Info("service updated", serviceLogFields(r, svc)...)
		render.JSON(w, http.StatusOK, svc)
	}
}

// DeleteService removes a service permanently.
func DeleteService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := serviceID(w, r, d)
		if !ok {
			return
		}

		if err := d.Store.Delete(r.Context(), id); err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}

		d.Logger.Info("service deleted", serviceLogFields(r, &domain.Service{ID: id})...)
		render.JSON(w, http.StatusOK, render.MessageResponse{Message: "Service deleted"})
	}
}

// serviceID reads and validates the {id} URL parameter, writing the error
// response itself when it is malformed.
func serviceID(w http.ResponseWriter, r *http.Request, d deps.Deps) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := domain.ValidateID(id); err != nil {
		render.Error(w, r, d.Logger, err)
		return "", false
	}
	return id, true
}

func serviceLogFields(r *http.Request, svc *domain.Service) []logger.Field {
	fields := []logger.Field{logger.String("service_id", svc.ID)}
	if svc.Status != "" {
		fields = append(fields, logger.String("status", svc.Status.String()))
	}
	if claims, ok := mw.ClaimsFrom(r.Context()); ok {
		fields = append(fields, logger.String("admin", claims.Username))
	}
	return fields
}
