package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// HealthCheck is the health check handler.
type HealthCheck struct {
	checks  map[string]Checker
	timeout time.Duration
}

// New creates a HealthCheck that runs the given dependency checks on every request.
func New(checks map[string]Checker) HealthCheck {
	return HealthCheck{checks: checks, timeout: 2 * time.Second}
}

// Handler is used to control the flow of GET /health endpoint
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), hc.timeout)
	defer cancel()

	status := http.StatusOK
	result := map[string]string{"status": "ok"}
	for name, check := range hc.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			result["status"] = "degraded"
			result[name] = err.Error()
			continue
		}
		result[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/health"
}
