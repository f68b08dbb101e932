package api

import (
	"context"
	"time"

	"tasktrack/internal/config"
	"tasktrack/internal/domain"
	"tasktrack/internal/errors"
	"tasktrack/internal/repository/sqlite"
	"tasktrack/internal/validation"
)

// API defines the interface for all task store operations.
// Each operation is one self-contained store transaction: the repository
// handle is acquired and released within the call, never across a round trip.
type API interface {
	CreateTask(ctx context.Context, name string, deadline string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type apiImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	queryTimeout  time.Duration
	writeTimeout  time.Duration
}

// New creates a new API instance with default validation limits.
func New(repo sqlite.Repository) API {
	return NewWithConfig(repo, config.NewConfig())
}

// NewWithConfig creates a new API instance using the configured
// validation limits and store timeouts.
func NewWithConfig(repo sqlite.Repository, cfg *config.Config) API {
	return &apiImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidatorWith(validation.NewValidatorWithConfig(cfg)),
		queryTimeout:  cfg.Database.QueryTimeout,
		writeTimeout:  cfg.Database.WriteTimeout,
	}
}

// CreateTask validates the name and deadline, inserts a new task and
// returns the created record with its store-assigned ID.
// A malformed deadline is rejected before any write happens.
func (a *apiImpl) CreateTask(ctx context.Context, name string, deadline string) (*domain.Task, error) {
	cleanedName, err := a.taskValidator.GetValidTaskName(name)
	if err != nil {
		return nil, errors.NewValidationError(userMessage(err), err)
	}

	parsedDeadline, err := a.taskValidator.ValidateDeadline(deadline)
	if err != nil {
		return nil, errors.NewInvalidInputError("deadline", deadline, "invalid date format")
	}

	ctx, cancel := context.WithTimeout(ctx, a.writeTimeout)
	defer cancel()

	dbTask := a.mapper.Task.ToDatabase(domain.NewTask(cleanedName, parsedDeadline))
	if err := a.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	domainTask := a.mapper.Task.FromDatabase(dbTask)
	return &domainTask, nil
}

// ListTasks returns all tasks ordered by ascending ID.
// An empty store yields an empty slice, not an error.
func (a *apiImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	dbTasks, err := a.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return a.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// DeleteTask removes the task with the given ID.
// Any ID not present in the store, zero and negative values included,
// yields a not-found error and has no side effect.
func (a *apiImpl) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, a.writeTimeout)
	defer cancel()

	if _, err := a.repo.GetTask(ctx, id); err != nil {
		return err
	}

	return a.repo.DeleteTask(ctx, id)
}

// userMessage extracts the human-readable reason from a validation error.
func userMessage(err error) string {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage()
	}
	return err.Error()
}
