// cmd/worker-manager/health.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"airline-assist/internal/common/camunda"
	"airline-assist/internal/common/database"
)

const readyTimeout = 3 * time.Second

type checkFunc func(ctx context.Context) error

func readinessChecks(zeebe *camunda.Client, rdb *database.RedisClient, stores *bookingStores) map[string]checkFunc {
	checks := map[string]checkFunc{
		"zeebe": zeebe.HealthCheck,
		"redis": rdb.Ping,
	}
	if stores.pg != nil {
		checks["postgres"] = stores.pg.Ping
	}
	if stores.es != nil {
		checks["elasticsearch"] = stores.es.Ping
	}
	return checks
}

// newOpsMux serves liveness, readiness and Prometheus metrics.
func newOpsMux(checks map[string]checkFunc) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status, code := "ready", http.StatusOK
		results := map[string]string{}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				results[name] = err.Error()
				status, code = "not ready", http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		writeJSON(w, code, map[string]interface{}{
			"status": status,
			"checks": results,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
