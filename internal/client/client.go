// Package client is the HTTP client for the task store service.
// It is the only way the bot reaches the store of record.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Task is a task as returned by the service. Deadline stays in its
// DD.MM.YYYY wire form; the bot renders it verbatim.
type Task struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Deadline string `json:"deadline"`
}

// DeleteResult is the service response to a successful deletion.
type DeleteResult struct {
	Message string `json:"message"`
}

// StatusError is a non-2xx response from the service, carrying the
// server's error message so callers can surface it to the user.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned %d: %s", e.Code, e.Message)
}

// TaskAPI is the subset of service operations the bot needs.
type TaskAPI interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, name, deadline string) (*Task, error)
	Delete(ctx context.Context, id int64) (*DeleteResult, error)
}

// Client talks to the task store service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the service at baseURL with a bounded
// per-request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// List fetches all tasks ordered by ascending ID.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tasks", nil)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := c.do(req, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create submits a new task. The deadline string is passed through
// unmodified; the service owns its validation.
func (c *Client) Create(ctx context.Context, name, deadline string) (*Task, error) {
	body, err := json.Marshal(map[string]string{
		"name":     name,
		"deadline": deadline,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var task Task
	if err := c.do(req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes the task with the given ID.
func (c *Client) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	url := fmt.Sprintf("%s/tasks/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return nil, err
	}

	var result DeleteResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do executes the request and decodes a 2xx response into out.
// Non-2xx responses become a StatusError with the server's message.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Code:    resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// readErrorMessage extracts the message from a structured error body,
// falling back to the raw body text.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}

	return strings.TrimSpace(string(raw))
}
