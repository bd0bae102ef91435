package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeQueueState struct{ closed bool }

func (f fakeQueueState) Closed() bool { return f.closed }

// TestHandleHealth tests the health handler response
func TestHandleHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	version := "1.0.0"
	startTime := time.Now().Add(-30 * time.Minute) // 30 minutes ago

	tests := []struct {
		name       string
		closed     bool
		wantCode   int
		wantStatus string
		wantQueue  string
	}{
		{"open queue", false, http.StatusOK, "healthy", "open"},
		{"closed queue", true, http.StatusServiceUnavailable, "degraded", "closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", HandleHealth(fakeQueueState{closed: tt.closed}, version, startTime))

			req := httptest.NewRequest("GET", "/health", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("HandleHealth() status = %d, want %d", w.Code, tt.wantCode)
			}

			var response HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}

			if response.Status != tt.wantStatus {
				t.Errorf("HandleHealth() status = %q, want %q", response.Status, tt.wantStatus)
			}
			if response.Queue != tt.wantQueue {
				t.Errorf("HandleHealth() queue = %q, want %q", response.Queue, tt.wantQueue)
			}
			if response.Version != version {
				t.Errorf("HandleHealth() version = %q, want %q", response.Version, version)
			}

			// Check that timestamp is recent (within last 5 seconds)
			if time.Since(response.Timestamp) > 5*time.Second {
				t.Error("HandleHealth() timestamp is not recent")
			}
			if response.Uptime == "" {
				t.Error("HandleHealth() uptime is empty")
			}
		})
	}
}
