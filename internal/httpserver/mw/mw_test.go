package mw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/statuspage/internal/auth"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/render"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:3000/"})(okHandler)

	tests := []struct {
		name        string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantOrigin  string
		wantMethods bool
	}{
		{name: "no origin", method: http.MethodGet, wantStatus: 200},
		{name: "allowed simple", method: http.MethodGet, origin: "http://localhost:3000", wantStatus: 200, wantOrigin: "http://localhost:3000"},
		{name: "allowed preflight", method: http.MethodOptions, origin: "http://localhost:3000", preflight: true, wantStatus: 204, wantOrigin: "http://localhost:3000", wantMethods: true},
		{name: "foreign preflight", method: http.MethodOptions, origin: "http://evil.test", preflight: true, wantStatus: 204},
		{name: "foreign simple", method: http.MethodGet, origin: "http://evil.test", wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/services", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantMethods {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestCORS_Wildcard(t *testing.T) {
	h := CORS([]string{"*"})(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://anything.test")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequireAdmin(t *testing.T) {
	gate, err := auth.New(auth.Config{Username: "admin", Password: "password", Secret: "test-secret"})
	require.NoError(t, err)
	tok, err := gate.Login("admin", "password")
	require.NoError(t, err)

	var seen *auth.Claims
	h := RequireAdmin(gate, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"valid", "Bearer " + tok.Value, 204, ""},
		{"missing", "", 401, render.CodeMissingCredential},
		{"wrong scheme", "Basic abc", 401, render.CodeMissingCredential},
		{"garbage", "Bearer garbage", 401, render.CodeInvalidOrExpiredCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodPost, "/api/services", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode == "" {
				require.NotNil(t, seen)
				assert.Equal(t, "admin", seen.Username)
				return
			}
			assert.Nil(t, seen)
			var body render.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		remote     string
		xff        string
		trustProxy bool
		want       int
	}{
		{"empty list passthrough", nil, "8.8.8.8:1234", "", false, 200},
		{"cidr match", []string{"10.0.0.0/8"}, "10.1.2.3:1234", "", false, 200},
		{"exact ip mismatch", []string{"127.0.0.1"}, "10.1.2.3:1234", "", false, 403},
		{"xff ignored without trust", []string{"127.0.0.1"}, "10.1.2.3:1234", "127.0.0.1", false, 403},
		{"xff trusted", []string{"127.0.0.1"}, "10.1.2.3:1234", "127.0.0.1, 10.0.0.1", true, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AllowOnlyCIDRS(tt.allowed, tt.trustProxy, logger.Nop())(okHandler)
			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestThrottle(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := Throttle(ThrottleConfig{
		Burst:     2,
		PerMinute: 6, // one token every 10s
		Now:       func() time.Time { return now },
	})(okHandler)

	hit := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, 200, hit("1.1.1.1:1").Code)
	assert.Equal(t, 200, hit("1.1.1.1:2").Code)

	rec := hit("1.1.1.1:3")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("Retry-After"))

	// other clients have their own bucket
	assert.Equal(t, 200, hit("2.2.2.2:1").Code)

	now = now.Add(10 * time.Second)
	assert.Equal(t, 200, hit("1.1.1.1:4").Code)
}

func TestThrottle_Disabled(t *testing.T) {
	h := Throttle(ThrottleConfig{})(okHandler)
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))
		require.Equal(t, 200, rec.Code)
	}
}

func TestLog_CapturesStatus(t *testing.T) {
	h := Log(logger.Nop(), false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
