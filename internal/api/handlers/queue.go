// Package handlers provides HTTP request handlers for the cmdq API server.
//
// This file implements the command queue endpoints. Submitted commands are
// turned into closures that record themselves in the execution journal when
// they run, so every request can be traced from acceptance to execution.
//
// QUEUE ENDPOINTS:
//
//   - GET /api/v1/queue/stats: Queue and dispatcher counters
//   - POST /api/v1/queue/commands: Enqueue one or more journal-recording commands
//   - POST /api/v1/queue/drain: Execute the pending generation synchronously
//
// BACKPRESSURE:
// A full receiving buffer is reported as 429 with the number of commands that
// were accepted before the overflow. Nothing is retried server-side; clients
// resubmit the remainder after the next drain.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/angrypants/cmdq/internal/cmdqueue"
	"github.com/angrypants/cmdq/internal/journal"
	"github.com/angrypants/cmdq/internal/logging"
	"github.com/angrypants/cmdq/internal/utils"
)

// CommandQueue is the subset of *cmdqueue.Queue the handlers use.
type CommandQueue interface {
	Enqueue(cmd cmdqueue.Command) error
	ExecuteCommands() (int, error)
	Metrics() cmdqueue.Metrics
	Generation() uint64
}

// DispatcherStats exposes drain loop counters. May be nil when no dispatcher
// is running.
type DispatcherStats interface {
	GetMetrics() map[string]int64
	LastError() string
}

// Recorder stores executed commands.
type Recorder interface {
	Record(e journal.Entry)
}

// SubmitRequest is the payload of POST /queue/commands.
type SubmitRequest struct {
	// Payload recorded when the command runs
	Message string `json:"message" binding:"required,min=1,max=256"`

	// Number of commands to enqueue, 1 when omitted
	Count int `json:"count" binding:"omitempty,min=1,max=10000"`
}

// SubmitResponse reports how many commands were accepted.
type SubmitResponse struct {
	ID       string `json:"id"`       // Submission ID shared by the accepted commands
	Accepted int    `json:"accepted"` // Commands stored in the receiving buffer
}

// DrainResponse reports how many commands a synchronous drain executed.
type DrainResponse struct {
	Executed int `json:"executed"`
}

// HandleQueueStats returns queue metrics merged with dispatcher metrics.
//
// GET /api/v1/queue/stats
func HandleQueueStats(queue CommandQueue, dispatcher DispatcherStats) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := queue.Metrics().Map()
		if dispatcher != nil {
			for k, v := range dispatcher.GetMetrics() {
				stats[k] = v
			}
		}

		response := gin.H{
			"status": "success",
			"data":   stats,
		}
		if dispatcher != nil {
			if lastErr := dispatcher.LastError(); lastErr != "" {
				response["last_error"] = lastErr
			}
		}

		c.JSON(http.StatusOK, response)
	}
}

// HandleSubmitCommands enqueues Count commands that each record Message in
// the journal when executed.
//
// POST /api/v1/queue/commands
func HandleSubmitCommands(queue CommandQueue, recorder Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logging.Warn("Command submission: Invalid request body: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"error":   "Invalid request body",
				"details": err.Error(),
			})
			return
		}
		if req.Count == 0 {
			req.Count = 1
		}

		id, err := utils.GenerateID()
		if err != nil {
			logging.Warn("Command submission: Failed to generate submission ID: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"error":   "Failed to generate submission ID",
				"details": "Internal ID generation error",
			})
			return
		}

		accepted := 0
		for seq := 1; seq <= req.Count; seq++ {
			cmd := newRecordingCommand(queue, recorder, id, req.Message, seq)
			if err = queue.Enqueue(cmd); err != nil {
				break
			}
			accepted++
		}

		data := SubmitResponse{ID: id, Accepted: accepted}

		switch {
		case err == nil:
			logging.Debug("Command submission %s: accepted %d commands", logging.FormatSubmissionID(id), accepted)
			c.JSON(http.StatusAccepted, gin.H{
				"status": "success",
				"data":   data,
			})

		case cmdqueue.IsOverflow(err):
			logging.Warn("Command submission %s: queue full after %d of %d commands",
				logging.FormatSubmissionID(id), accepted, req.Count)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"error":   "queue full",
				"details": err.Error(),
				"data":    data,
			})

		case errors.Is(err, cmdqueue.ErrClosed):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "error",
				"error":   "queue closed",
				"details": err.Error(),
				"data":    data,
			})

		default:
			logging.Error("Command submission %s: enqueue failed: %v", logging.FormatSubmissionID(id), err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"error":   "Failed to enqueue command",
				"details": err.Error(),
				"data":    data,
			})
		}
	}
}

// newRecordingCommand captures everything the command needs at creation time.
func newRecordingCommand(queue CommandQueue, recorder Recorder, id, message string, seq int) cmdqueue.Command {
	enqueuedAt := time.Now()
	return func() {
		recorder.Record(journal.Entry{
			ID:         id,
			Message:    message,
			Sequence:   seq,
			EnqueuedAt: enqueuedAt,
			ExecutedAt: time.Now(),
			Batch:      queue.Generation(),
		})
	}
}

// HandleDrain executes the pending generation on the request goroutine.
//
// POST /api/v1/queue/drain
func HandleDrain(queue CommandQueue) gin.HandlerFunc {
	return func(c *gin.Context) {
		executed, err := queue.ExecuteCommands()
		data := DrainResponse{Executed: executed}

		if err != nil {
			code := http.StatusInternalServerError
			message := "command failures"
			if errors.Is(err, cmdqueue.ErrClosed) {
				code = http.StatusServiceUnavailable
				message = "queue closed"
			}

			logging.Warn("Manual drain: %v", err)
			c.JSON(code, gin.H{
				"status":  "error",
				"error":   message,
				"details": err.Error(),
				"data":    data,
			})
			return
		}

		logging.Info("Manual drain executed %d commands", executed)
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   data,
		})
	}
}
