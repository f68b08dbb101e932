package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tasktrack/internal/api"
)

// Server exposes the task store API over HTTP.
type Server struct {
	app *fiber.App
	api api.API
}

// New creates a new Server around the given task API.
func New(taskAPI api.API) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          errorHandler,
		}),
		api: taskAPI,
	}

	s.app.Use(recover.New())
	s.setupRoutes()

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.app.Get("/health", s.health)

	tasks := s.app.Group("/tasks")
	tasks.Get("/", s.listTasks)
	tasks.Post("/", s.createTask)
	tasks.Delete("/:id", s.deleteTask)
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(_ context.Context) error {
	return s.app.Shutdown()
}

// App exposes the underlying Fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// errorHandler handles errors escaping route handlers.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
