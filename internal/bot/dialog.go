package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"tasktrack/internal/client"
)

// deletePrefix tags inline keyboard selections with the task to delete.
const deletePrefix = "delete_"

// Button is one selectable inline keyboard entry.
type Button struct {
	Label string
	Data  string
}

// Reply is the outbound action a dialogue step produces.
type Reply struct {
	Text    string
	Buttons []Button
}

// Dialog drives the per-chat task-creation state machine and the
// on-demand list/delete interactions. It is transport-agnostic: the
// Telegram loop feeds it events and delivers its replies.
type Dialog struct {
	api      client.TaskAPI
	sessions *SessionStore
}

// NewDialog creates a Dialog over the given task service client.
func NewDialog(api client.TaskAPI) *Dialog {
	return &Dialog{
		api:      api,
		sessions: NewSessionStore(),
	}
}

// HandleCommand processes a slash command for the chat. Commands always
// take effect, whatever the pending dialogue state.
func (d *Dialog) HandleCommand(ctx context.Context, chatID int64, command string) Reply {
	switch command {
	case "start":
		return Reply{Text: msgGreeting}
	case "show_tasks":
		return d.showTasks(ctx)
	case "add_task":
		d.sessions.Put(chatID, Session{State: StateAwaitingName})
		return Reply{Text: msgPromptName}
	case "delete_task":
		return d.deleteMenu(ctx)
	default:
		return Reply{}
	}
}

// HandleText processes a plain text message according to the chat's
// dialogue state. Text arriving in Idle is ignored.
func (d *Dialog) HandleText(ctx context.Context, chatID int64, text string) Reply {
	session := d.sessions.Get(chatID)

	switch session.State {
	case StateAwaitingName:
		// The text is taken verbatim as the candidate name; the service
		// owns validation.
		d.sessions.Put(chatID, Session{State: StateAwaitingDeadline, Name: text})
		return Reply{Text: msgPromptDeadline}

	case StateAwaitingDeadline:
		// The flow ends here whatever the outcome.
		defer d.sessions.Clear(chatID)

		task, err := d.api.Create(ctx, session.Name, text)
		if err != nil {
			return Reply{Text: renderError(err)}
		}
		return Reply{Text: renderCreated(task)}

	default:
		return Reply{}
	}
}

// HandleSelection processes an inline keyboard selection: deletes the
// chosen task, re-lists, and returns the text the original message
// should be edited to.
func (d *Dialog) HandleSelection(ctx context.Context, chatID int64, data string) Reply {
	id, err := parseDeleteSelection(data)
	if err != nil {
		return Reply{Text: msgGenericError}
	}

	if _, err := d.api.Delete(ctx, id); err != nil {
		return Reply{Text: renderError(err)}
	}

	// Re-list after the deletion. Another deletion may land between the
	// two calls; the re-render is eventually consistent, not atomic.
	remaining, err := d.api.List(ctx)
	if err != nil {
		return Reply{Text: msgTaskDeleted}
	}
	return Reply{Text: renderDeleted(remaining)}
}

// showTasks lists all tasks, or the empty notice.
func (d *Dialog) showTasks(ctx context.Context) Reply {
	tasks, err := d.api.List(ctx)
	if err != nil {
		return Reply{Text: renderError(err)}
	}
	return Reply{Text: renderTaskList(tasks)}
}

// deleteMenu builds the inline keyboard of deletable tasks.
func (d *Dialog) deleteMenu(ctx context.Context) Reply {
	tasks, err := d.api.List(ctx)
	if err != nil {
		return Reply{Text: renderError(err)}
	}
	if len(tasks) == 0 {
		return Reply{Text: msgEmptyList}
	}

	buttons := make([]Button, 0, len(tasks))
	for _, t := range tasks {
		buttons = append(buttons, Button{
			Label: t.Name,
			Data:  deletePrefix + strconv.FormatInt(t.ID, 10),
		})
	}
	return Reply{Text: msgChooseDelete, Buttons: buttons}
}

// parseDeleteSelection extracts the task ID from callback data.
func parseDeleteSelection(data string) (int64, error) {
	raw, ok := strings.CutPrefix(data, deletePrefix)
	if !ok {
		return 0, errors.New("unknown selection: " + data)
	}
	return strconv.ParseInt(raw, 10, 64)
}
