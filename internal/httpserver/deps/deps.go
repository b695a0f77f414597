package deps

import (
	"time"

	"github.com/MrSnakeDoc/statuspage/internal/auth"
	"github.com/MrSnakeDoc/statuspage/internal/httpserver/mw"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
	"github.com/MrSnakeDoc/statuspage/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	APIPrefix      string        // mount point of the JSON API, "" for root
	CORSOrigins    []string      // browser origins allowed to call the API
	RequestTimeout time.Duration // per-request deadline, 0 disables

	AllowedCIDRS []string // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	Store         store.ServiceStore
	Gate          *auth.Gate
	LoginThrottle mw.ThrottleConfig
}

// Now returns the current time from TimeNow, or time.Now when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
