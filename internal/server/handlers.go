package server

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tasktrack/internal/domain"
	"tasktrack/internal/errors"
)

// health handles GET /health.
func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "healthy"})
}

// listTasks handles GET /tasks.
func (s *Server) listTasks(c *fiber.Ctx) error {
	tasks, err := s.api.ListTasks(c.Context())
	if err != nil {
		return s.respondError(c, "list tasks", err)
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}

	return c.JSON(resp)
}

// createTask handles POST /tasks.
func (s *Server) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	task, err := s.api.CreateTask(c.Context(), req.Name, req.Deadline)
	if err != nil {
		return s.respondError(c, "create task", err)
	}

	return c.JSON(toTaskResponse(task))
}

// deleteTask handles DELETE /tasks/:id.
func (s *Server) deleteTask(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Task ID must be an integer",
		})
	}

	if err := s.api.DeleteTask(c.Context(), id); err != nil {
		return s.respondError(c, "delete task", err)
	}

	return c.JSON(DeleteTaskResponse{
		Message: "Task " + strconv.FormatInt(id, 10) + " deleted",
	})
}

// respondError maps structured application errors to HTTP statuses.
// Persistence detail is logged here and never exposed to the caller.
func (s *Server) respondError(c *fiber.Ctx, operation string, err error) error {
	if errors.ShouldLogError(err) {
		log.Printf("[server] %s failed: %v", operation, err)
	}

	if appErr, ok := errors.AsAppError(err); ok {
		switch appErr.Type {
		case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "validation_error",
				Message: errors.GetUserMessage(err),
			})
		case errors.ErrorTypeNotFound:
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: errors.GetUserMessage(err),
			})
		}
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "server_error",
		Message: "Internal server error",
	})
}

// toTaskResponse converts a domain Task to its HTTP representation.
func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:       t.ID,
		Name:     t.Name,
		Deadline: t.FormattedDeadline(),
	}
}
