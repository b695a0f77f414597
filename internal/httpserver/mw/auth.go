package mw

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/statuspage/internal/auth"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/render"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
)

type ctxKey int

const claimsKey ctxKey = iota

// RequireAdmin rejects requests without a valid bearer token before any
// handler runs. Verified claims are stored on the request context.
func RequireAdmin(gate *auth.Gate, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := gate.VerifyHeader(r.Header.Get("Authorization"))
			if err != nil {
				log.Debug("admin request rejected",
					logger.String("path", r.URL.Path),
					logger.Error(err))
				render.Error(w, r, log, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the claims stored by RequireAdmin, if any.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}
