// Package client provides the HTTP client cmdqctl uses to talk to cmdqd.
//
// CmdqAPIClient wraps a Resty client configured with timeouts, retries on
// connection failures and request logging routed through the CLI logger. Each
// method maps one daemon endpoint to a typed result and turns non-success
// status codes into descriptive errors.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/angrypants/cmdq/cmd/cmdqctl/config"
	"github.com/angrypants/cmdq/cmd/cmdqctl/utils"
	"github.com/angrypants/cmdq/internal/logging"
	"github.com/angrypants/cmdq/internal/netutil"
)

// ErrQueueFull is returned by SubmitCommands when the daemon's receiving
// buffer overflowed. The SubmitResult still reports what was accepted.
var ErrQueueFull = errors.New("queue full")

// APIResponse is the daemon's success envelope.
type APIResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Count  int    `json:"count,omitempty"`
}

// APIError is the daemon's error envelope.
type APIError struct {
	Status  string         `json:"status"`
	Error   string         `json:"error"`
	Details string         `json:"details,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Health is the daemon health check result.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Queue     string    `json:"queue"`
}

// QueueStats holds queue and dispatcher counters.
type QueueStats struct {
	Counters  map[string]int64 `json:"counters"`
	LastError string           `json:"last_error,omitempty"`
}

// SubmitResult reports the outcome of a submission.
type SubmitResult struct {
	ID       string `json:"id"`
	Accepted int    `json:"accepted"`
}

// DrainResult reports the outcome of a manual drain.
type DrainResult struct {
	Executed int    `json:"executed"`
	Error    string `json:"error,omitempty"`
}

// JournalEntry is one executed command.
type JournalEntry struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Sequence   int       `json:"sequence"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	ExecutedAt time.Time `json:"executed_at"`
	Batch      uint64    `json:"batch"`
}

// Latency returns how long the command waited in the queue.
func (e JournalEntry) Latency() time.Duration {
	return e.ExecutedAt.Sub(e.EnqueuedAt)
}

// JournalPage is a window of the daemon's journal.
type JournalPage struct {
	Entries []JournalEntry `json:"entries"`
	Total   uint64         `json:"total"`
}

// CmdqAPIClient wraps the Resty HTTP client for cmdqd API communication.
type CmdqAPIClient struct {
	client  *resty.Client
	baseURL string
}

// NewCmdqAPIClient creates an API client for the daemon at apiAddr.
// Requests time out after timeout seconds and are retried only when the
// connection itself fails.
func NewCmdqAPIClient(apiAddr string, timeout int) *CmdqAPIClient {
	client := resty.New()

	baseURL := fmt.Sprintf("http://%s/api/v1", apiAddr)

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(utils.RestryLogger{})

	client.
		SetTimeout(time.Duration(timeout)*time.Second).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("cmdqctl/%s", config.Version))

	// Only retry on connection errors, not HTTP errors. Submissions are not
	// idempotent, so a request that reached the daemon is never resent.
	client.
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil && netutil.IsConnectionRefusedError(err)
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &CmdqAPIClient{
		client:  client,
		baseURL: baseURL,
	}
}

// SetRetryWait overrides the retry backoff. Used by tests.
func (api *CmdqAPIClient) SetRetryWait(wait time.Duration) {
	api.client.SetRetryWaitTime(wait).SetRetryMaxWaitTime(wait)
}

// connectError wraps a transport failure, adding a hint when nothing is
// listening on the API address.
func (api *CmdqAPIClient) connectError(err error) error {
	if netutil.IsConnectionRefusedError(err) {
		return fmt.Errorf("failed to connect to API server at %s (is cmdqd running?): %w", api.baseURL, err)
	}
	return fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
}

// statusError renders an unexpected response.
func statusError(resp *resty.Response, apiErr *APIError) error {
	if apiErr != nil && apiErr.Error != "" {
		if apiErr.Details != "" {
			return fmt.Errorf("API request failed with status %d: %s: %s", resp.StatusCode(), apiErr.Error, apiErr.Details)
		}
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), apiErr.Error)
	}
	return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
}

// GetHealth fetches the daemon health check. A degraded daemon answers 503
// with a valid body, which is returned without error.
func (api *CmdqAPIClient) GetHealth() (*Health, error) {
	var health Health

	resp, err := api.client.R().
		SetResult(&health).
		SetError(&health).
		Get("/health")
	if err != nil {
		return nil, api.connectError(err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusServiceUnavailable {
		return nil, statusError(resp, nil)
	}

	return &health, nil
}

// GetQueueStats fetches queue and dispatcher counters.
func (api *CmdqAPIClient) GetQueueStats() (*QueueStats, error) {
	var response struct {
		APIResponse
		LastError string `json:"last_error"`
	}
	var apiErr APIError

	resp, err := api.client.R().
		SetResult(&response).
		SetError(&apiErr).
		Get("/queue/stats")
	if err != nil {
		return nil, api.connectError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, statusError(resp, &apiErr)
	}

	stats := &QueueStats{
		Counters:  make(map[string]int64),
		LastError: response.LastError,
	}
	if data, ok := response.Data.(map[string]any); ok {
		for key := range data {
			stats.Counters[key] = utils.GetInt64(data, key)
		}
	}

	return stats, nil
}

// SubmitCommands asks the daemon to enqueue count commands carrying message.
//
// On overflow it returns the partial result together with ErrQueueFull.
func (api *CmdqAPIClient) SubmitCommands(message string, count int) (*SubmitResult, error) {
	var response struct {
		Status string       `json:"status"`
		Data   SubmitResult `json:"data"`
	}
	var apiErr APIError

	payload := map[string]any{
		"message": message,
		"count":   count,
	}

	resp, err := api.client.R().
		SetBody(payload).
		SetResult(&response).
		SetError(&apiErr).
		Post("/queue/commands")
	if err != nil {
		return nil, api.connectError(err)
	}

	switch resp.StatusCode() {
	case http.StatusAccepted:
		return &response.Data, nil

	case http.StatusTooManyRequests:
		result := &SubmitResult{
			ID:       utils.GetString(apiErr.Data, "id"),
			Accepted: utils.GetInt(apiErr.Data, "accepted"),
		}
		return result, fmt.Errorf("%w: %s", ErrQueueFull, apiErr.Details)

	case http.StatusBadRequest:
		return nil, fmt.Errorf("invalid request: %s", apiErr.Details)

	default:
		return nil, statusError(resp, &apiErr)
	}
}

// Drain asks the daemon to execute the pending generation now.
//
// Command failures still report how many commands ran; the failure text is
// returned in DrainResult.Error rather than as an error.
func (api *CmdqAPIClient) Drain() (*DrainResult, error) {
	var response struct {
		Status string      `json:"status"`
		Data   DrainResult `json:"data"`
	}
	var apiErr APIError

	resp, err := api.client.R().
		SetResult(&response).
		SetError(&apiErr).
		Post("/queue/drain")
	if err != nil {
		return nil, api.connectError(err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return &response.Data, nil

	case http.StatusInternalServerError:
		if apiErr.Error == "command failures" {
			return &DrainResult{
				Executed: utils.GetInt(apiErr.Data, "executed"),
				Error:    apiErr.Details,
			}, nil
		}
		return nil, statusError(resp, &apiErr)

	default:
		return nil, statusError(resp, &apiErr)
	}
}

// GetJournal fetches the newest limit journal entries, oldest first. A limit
// of 0 fetches everything the daemon retains.
func (api *CmdqAPIClient) GetJournal(limit int) (*JournalPage, error) {
	var response struct {
		Status string         `json:"status"`
		Data   []JournalEntry `json:"data"`
		Count  int            `json:"count"`
		Total  uint64         `json:"total"`
	}
	var apiErr APIError

	req := api.client.R().
		SetResult(&response).
		SetError(&apiErr)
	if limit > 0 {
		req.SetQueryParam("limit", fmt.Sprintf("%d", limit))
	}

	resp, err := req.Get("/journal")
	if err != nil {
		return nil, api.connectError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, statusError(resp, &apiErr)
	}

	return &JournalPage{
		Entries: response.Data,
		Total:   response.Total,
	}, nil
}

// CreateAPIClient creates a client from the global CLI configuration.
func CreateAPIClient() *CmdqAPIClient {
	return NewCmdqAPIClient(config.Global.APIAddr, config.Global.Timeout)
}
