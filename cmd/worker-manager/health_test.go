package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsMux_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newOpsMux(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestOpsMux_Ready(t *testing.T) {
	tests := []struct {
		name       string
		redisErr   error
		wantCode   int
		wantStatus string
	}{
		{name: "all checks pass", wantCode: http.StatusOK, wantStatus: "ready"},
		{name: "redis down", redisErr: errors.New("connection refused"), wantCode: http.StatusServiceUnavailable, wantStatus: "not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := map[string]checkFunc{
				"zeebe": func(context.Context) error { return nil },
				"redis": func(context.Context) error { return tt.redisErr },
			}
			rec := httptest.NewRecorder()
			newOpsMux(checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			require.Equal(t, tt.wantCode, rec.Code)
			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "ok", body.Checks["zeebe"])
		})
	}
}

func TestOpsMux_Metrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newOpsMux(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
