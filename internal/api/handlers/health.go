package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Queue     string    `json:"queue"` // "open" or "closed"
}

// QueueState reports whether the command queue still accepts work.
type QueueState interface {
	Closed() bool
}

// HandleHealth returns the health status of the API server. A closed queue
// reports "degraded" with 503 so load balancers stop routing submissions.
func HandleHealth(queue QueueState, version string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		uptime := time.Since(startTime)

		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    uptime.Truncate(time.Second).String(),
			Queue:     "open",
		}

		code := http.StatusOK
		if queue.Closed() {
			response.Status = "degraded"
			response.Queue = "closed"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, response)
	}
}
