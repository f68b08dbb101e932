package bot

import (
	"strings"

	"tasktrack/internal/client"
)

// User-facing message text. The bot never exposes internal error detail
// beyond what the service chose to put in its error message.
const (
	msgGreeting = "Hi! I'm a task tracking bot.\n\n" +
		"Available commands:\n" +
		"/show_tasks - Show tasks\n" +
		"/add_task - Add a task\n" +
		"/delete_task - Delete a task"
	msgEmptyList      = "The task list is empty"
	msgListHeader     = "Your tasks:"
	msgPromptName     = "Enter the task name:"
	msgPromptDeadline = "Enter the deadline (DD.MM.YYYY):"
	msgChooseDelete   = "Choose a task to delete:"
	msgTaskDeleted    = "Task deleted"
	msgRemaining      = "Remaining tasks:"
	msgGenericError   = "Something went wrong"
)

// renderTask renders one task block: name plus formatted deadline.
func renderTask(t client.Task) string {
	return t.Name + "\nDeadline: " + t.Deadline
}

// renderTaskList renders the full listing, or the empty notice.
func renderTaskList(tasks []client.Task) string {
	if len(tasks) == 0 {
		return msgEmptyList
	}

	var b strings.Builder
	b.WriteString(msgListHeader)
	b.WriteString("\n\n")
	for _, t := range tasks {
		b.WriteString(renderTask(t))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCreated renders the confirmation for a freshly created task.
func renderCreated(t *client.Task) string {
	return "Task added!\nName: " + t.Name + "\nDeadline: " + t.Deadline
}

// renderDeleted renders the deletion confirmation with the updated list
// appended, or the empty notice when nothing remains.
func renderDeleted(remaining []client.Task) string {
	if len(remaining) == 0 {
		return msgTaskDeleted + "\n\n" + msgEmptyList
	}

	var b strings.Builder
	b.WriteString(msgTaskDeleted)
	b.WriteString("\n\n")
	b.WriteString(msgRemaining)
	b.WriteString("\n\n")
	for _, t := range remaining {
		b.WriteString(renderTask(t))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderError renders a failure, including the server's error text when
// the failure was a rejected request rather than a transport problem.
func renderError(err error) string {
	if statusErr, ok := err.(*client.StatusError); ok && statusErr.Message != "" {
		return "Error: " + statusErr.Message
	}
	return msgGenericError
}
