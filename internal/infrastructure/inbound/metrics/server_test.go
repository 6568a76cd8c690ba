package metrics_server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	metrics_server "postboard-service/internal/infrastructure/inbound/metrics"
	"postboard-service/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServer_Handler(t *testing.T) {
	srv := metrics_server.NewMetricsServer("127.0.0.1", 0, logger.New("test"))

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "metrics endpoint", path: "/metrics", wantStatus: http.StatusOK},
		{name: "health endpoint", path: "/health", wantStatus: http.StatusOK},
		{name: "unknown path", path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
