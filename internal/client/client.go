package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/tasktracker/internal/model"
)

// Sentinel errors returned by the client. Every failure, whether transport,
// non-2xx status, or undecodable body, wraps exactly one of these.
var (
	ErrLoadFailed   = errors.New("failed to load tasks")
	ErrUpdateFailed = errors.New("failed to update task")
	ErrCreateFailed = errors.New("failed to create task")
)

const tasksPath = "/api/tasks"

// Client is a thin HTTP client for the Task API. It does not retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Task API client rooted at baseURL
// (e.g. http://localhost:8080). A zero timeout disables the deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FromConfig builds a client from the [client] section of the app config.
func FromConfig(cfg model.ClientConfig) *Client {
	return NewClient(cfg.BaseURL, time.Duration(cfg.TimeoutSec)*time.Second)
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchTasks returns every task known to the server.
func (c *Client) FetchTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// UpdateTask replaces the task at id. The payload's ID is forced to id so
// the server-side match check passes.
func (c *Client) UpdateTask(ctx context.Context, id int64, task model.Task) (*model.Task, error) {
	task.ID = id
	var updated model.Task
	path := fmt.Sprintf("%s/%d", tasksPath, id)
	if err := c.do(ctx, http.MethodPut, path, task, &updated); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	return &updated, nil
}

// CreateTask posts a new task and returns the stored record with its
// assigned ID.
func (c *Client) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	task.ID = 0
	var created model.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, task, &created); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}
	return &created, nil
}

// do builds the request, sends it once, and decodes a 2xx JSON body into
// result.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API error (%d) on %s %s: %s",
				resp.StatusCode, method, path, apiErr.Error)
		}
		return fmt.Errorf("unexpected status %d on %s %s",
			resp.StatusCode, method, path)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}
	return nil
}
