package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/statuspage/internal/auth"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/render"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
	"github.com/MrSnakeDoc/statuspage/internal/utils"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges the admin credential pair for a session token.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := render.DecodeJSON(w, r, &req); err != nil {
			render.Error(w, r, d.Logger, err)
			return
		}

		tok, err := d.Gate.Login(req.Username, req.Password)
		if err != nil {
			d.Logger.Warn("admin login failed",
				logger.String("remote_ip", utils.ClientIP(r, d.TrustProxy)),
				logger.String("request_id", middleware.GetReqID(r.Context())))
			render.Error(w, r, d.Logger, err)
			return
		}

		d.Logger.Info("admin logged in",
			logger.String("remote_ip", utils.ClientIP(r, d.TrustProxy)),
			logger.Time("expires_at", tok.ExpiresAt))
		render.JSON(w, http.StatusOK, auth.Token{Value: tok.Value})
	}
}
