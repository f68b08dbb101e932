package server

// CreateTaskRequest is the HTTP request body for creating a task.
// Deadline is a DD.MM.YYYY string.
type CreateTaskRequest struct {
	Name     string `json:"name"`
	Deadline string `json:"deadline"`
}

// TaskResponse is the HTTP representation of a single task.
type TaskResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Deadline string `json:"deadline"`
}

// DeleteTaskResponse is the HTTP response for a successful deletion.
type DeleteTaskResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
