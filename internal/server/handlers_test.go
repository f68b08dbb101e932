package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/api"
	"tasktrack/internal/domain"
	"tasktrack/internal/errors"
	"tasktrack/internal/repository/sqlite"
)

func setupServer(t *testing.T) *Server {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return New(api.New(repo))
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthEndpoint(t *testing.T) {
	s := setupServer(t)

	resp := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	decodeBody(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
}

func TestListTasksEmptyStore(t *testing.T) {
	s := setupServer(t)

	resp := doRequest(t, s, http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tasks []TaskResponse
	decodeBody(t, resp, &tasks)
	assert.Empty(t, tasks)
}

func TestCreateAndListTask(t *testing.T) {
	s := setupServer(t)

	// Create on a fresh store assigns ID 1 and echoes the formatted deadline
	resp := doRequest(t, s, http.MethodPost, "/tasks", CreateTaskRequest{
		Name:     "Buy milk",
		Deadline: "01.01.2026",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var created TaskResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Buy milk", created.Name)
	assert.Equal(t, "01.01.2026", created.Deadline)

	// Listing returns exactly the created task
	resp = doRequest(t, s, http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tasks []TaskResponse
	decodeBody(t, resp, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, created, tasks[0])
}

func TestCreateTaskInvalidDateFormat(t *testing.T) {
	s := setupServer(t)

	resp := doRequest(t, s, http.MethodPost, "/tasks", CreateTaskRequest{
		Name:     "Buy milk",
		Deadline: "31-12-2024",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "validation_error", errResp.Error)
	assert.Contains(t, errResp.Message, "invalid date format")

	// No partial write happened
	resp = doRequest(t, s, http.MethodGet, "/tasks", nil)
	var tasks []TaskResponse
	decodeBody(t, resp, &tasks)
	assert.Empty(t, tasks)
}

func TestCreateTaskInvalidBody(t *testing.T) {
	s := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteTask(t *testing.T) {
	s := setupServer(t)

	resp := doRequest(t, s, http.MethodPost, "/tasks", CreateTaskRequest{
		Name:     "To delete",
		Deadline: "15.03.2026",
	})
	var created TaskResponse
	decodeBody(t, resp, &created)

	resp = doRequest(t, s, http.MethodDelete, "/tasks/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result DeleteTaskResponse
	decodeBody(t, resp, &result)
	assert.Contains(t, result.Message, "1")

	// Deleting the same ID again yields 404
	resp = doRequest(t, s, http.MethodDelete, "/tasks/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteTaskNotFound(t *testing.T) {
	s := setupServer(t)

	resp := doRequest(t, s, http.MethodDelete, "/tasks/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "not_found", errResp.Error)
}

func TestDeleteTaskZeroAndNegativeIDsAreNotFound(t *testing.T) {
	s := setupServer(t)

	// IDs that cannot be present in the store are plain misses, not
	// malformed requests.
	for _, path := range []string{"/tasks/0", "/tasks/-1"} {
		resp := doRequest(t, s, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "path %s", path)

		var errResp ErrorResponse
		decodeBody(t, resp, &errResp)
		assert.Equal(t, "not_found", errResp.Error, "path %s", path)
	}
}

func TestDeleteTaskNonIntegerID(t *testing.T) {
	s := setupServer(t)

	resp := doRequest(t, s, http.MethodDelete, "/tasks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// failingAPI simulates an unavailable store for server-error mapping
type failingAPI struct{}

func (f *failingAPI) CreateTask(ctx context.Context, name, deadline string) (*domain.Task, error) {
	return nil, errors.NewDatabaseError("insert task", assert.AnError)
}

func (f *failingAPI) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return nil, errors.NewDatabaseError("query tasks", assert.AnError)
}

func (f *failingAPI) DeleteTask(ctx context.Context, id int64) error {
	return errors.NewDatabaseError("delete task", assert.AnError)
}

func TestServerErrorMapping(t *testing.T) {
	s := New(&failingAPI{})

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{name: "list maps store failure to 500", method: http.MethodGet, path: "/tasks"},
		{name: "create maps store failure to 500", method: http.MethodPost, path: "/tasks",
			body: CreateTaskRequest{Name: "Task", Deadline: "01.01.2026"}},
		{name: "delete maps store failure to 500", method: http.MethodDelete, path: "/tasks/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

			// Internal detail is not exposed to the caller
			var errResp ErrorResponse
			decodeBody(t, resp, &errResp)
			assert.Equal(t, "server_error", errResp.Error)
			assert.NotContains(t, errResp.Message, assert.AnError.Error())
		})
	}
}
