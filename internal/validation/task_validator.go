package validation

import (
	"time"

	"tasktrack/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWith creates a task validator backed by the given Validator
func NewTaskValidatorWith(v *Validator) *TaskValidator {
	return &TaskValidator{validator: v}
}

// ValidateTaskName validates a task name for creation
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("name")
		return validationError
	}

	if !tv.validator.IsValidTaskNameLength(trimmedName) {
		validationError.AddInvalidLengthError("name", trimmedName, 1, tv.validator.TaskNameMaxLength())
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateDeadline validates and parses a deadline string in DD.MM.YYYY form.
// The parse is strict; any other separator or layout is rejected.
func (tv *TaskValidator) ValidateDeadline(deadline string) (time.Time, error) {
	parsed, err := domain.ParseDeadline(deadline)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("deadline", deadline, "DD.MM.YYYY")
		return time.Time{}, validationError
	}
	return parsed, nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}
