package cleanup

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/studiohq/portal/pkg/logger"
)

// Config holds the cleanup trigger configuration.
type Config struct {
	// CronSecret authenticates the external scheduler calling the trigger
	CronSecret string `env:"CRON_SECRET,required"`
}

type triggerResponse struct {
	Cleaned   Report `json:"cleaned"`
	Timestamp string `json:"timestamp"`
}

// Handler exposes the sweep over HTTP for external cron services. Both GET
// and POST are accepted because hosted schedulers differ on which they
// send. The bearer credential is checked in constant time and nothing is
// deleted before it passes.
func Handler(scheduler *Scheduler, secret string) http.Handler {
	if scheduler == nil {
		panic("cleanup.Handler: scheduler is required")
	}
	if secret == "" {
		panic("cleanup.Handler: secret is required")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		if !authorized(r, secret) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		report, err := scheduler.Run(r.Context())
		if err != nil {
			scheduler.log.ErrorContext(r.Context(), "cleanup sweep failed",
				logger.Error(err),
				logger.Component("cleanup"),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(triggerResponse{
			Cleaned:   report,
			Timestamp: scheduler.now().UTC().Format(time.RFC3339),
		})
	})
}

func authorized(r *http.Request, secret string) bool {
	value := r.Header.Get("Authorization")
	if !strings.HasPrefix(value, "Bearer ") {
		return false
	}
	presented := strings.TrimPrefix(value, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1
}
