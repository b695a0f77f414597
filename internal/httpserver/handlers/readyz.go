package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/statuspage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/render"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
)

const readyzPingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz pings the store and answers 503 while it is unreachable.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyzPingTimeout)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("store not ready", logger.Error(err))
			render.JSON(w, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Error: "store unavailable",
			})
			return
		}

		render.JSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
