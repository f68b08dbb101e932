package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/client"
)

// fakeTaskAPI implements client.TaskAPI with an in-memory task list
type fakeTaskAPI struct {
	tasks      []client.Task
	nextID     int64
	failWith   error
	createdArg [2]string
}

func newFakeTaskAPI() *fakeTaskAPI {
	return &fakeTaskAPI{nextID: 1}
}

func (f *fakeTaskAPI) List(ctx context.Context) ([]client.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.tasks, nil
}

func (f *fakeTaskAPI) Create(ctx context.Context, name, deadline string) (*client.Task, error) {
	f.createdArg = [2]string{name, deadline}
	if f.failWith != nil {
		return nil, f.failWith
	}
	task := client.Task{ID: f.nextID, Name: name, Deadline: deadline}
	f.tasks = append(f.tasks, task)
	f.nextID++
	return &task, nil
}

func (f *fakeTaskAPI) Delete(ctx context.Context, id int64) (*client.DeleteResult, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return &client.DeleteResult{Message: fmt.Sprintf("Task %d deleted", id)}, nil
		}
	}
	return nil, &client.StatusError{Code: http.StatusNotFound, Message: fmt.Sprintf("task not found: %d", id)}
}

const testChatID = int64(4242)

func TestStartCommand(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())

	reply := dialog.HandleCommand(context.Background(), testChatID, "start")
	assert.Contains(t, reply.Text, "/show_tasks")
	assert.Contains(t, reply.Text, "/add_task")
	assert.Contains(t, reply.Text, "/delete_task")
}

func TestShowTasksEmpty(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())

	reply := dialog.HandleCommand(context.Background(), testChatID, "show_tasks")
	assert.Equal(t, msgEmptyList, reply.Text)
}

func TestShowTasksRendersEachTask(t *testing.T) {
	api := newFakeTaskAPI()
	api.tasks = []client.Task{
		{ID: 1, Name: "Buy milk", Deadline: "01.01.2026"},
		{ID: 2, Name: "Walk dog", Deadline: "02.01.2026"},
	}
	dialog := NewDialog(api)

	reply := dialog.HandleCommand(context.Background(), testChatID, "show_tasks")
	assert.Contains(t, reply.Text, "Buy milk\nDeadline: 01.01.2026")
	assert.Contains(t, reply.Text, "Walk dog\nDeadline: 02.01.2026")
}

func TestShowTasksServiceUnavailable(t *testing.T) {
	api := newFakeTaskAPI()
	api.failWith = errors.New("connection refused")
	dialog := NewDialog(api)

	reply := dialog.HandleCommand(context.Background(), testChatID, "show_tasks")
	assert.Equal(t, msgGenericError, reply.Text)
}

func TestCreationFlow(t *testing.T) {
	api := newFakeTaskAPI()
	dialog := NewDialog(api)
	ctx := context.Background()

	// /add_task prompts for a name without touching the service
	reply := dialog.HandleCommand(ctx, testChatID, "add_task")
	assert.Equal(t, msgPromptName, reply.Text)
	assert.Equal(t, StateAwaitingName, dialog.sessions.Get(testChatID).State)

	// The next text message is the name, taken verbatim
	reply = dialog.HandleText(ctx, testChatID, "Buy milk")
	assert.Equal(t, msgPromptDeadline, reply.Text)
	assert.Equal(t, StateAwaitingDeadline, dialog.sessions.Get(testChatID).State)

	// The next text message is the deadline; the task is created
	reply = dialog.HandleText(ctx, testChatID, "01.01.2026")
	assert.Contains(t, reply.Text, "Task added!")
	assert.Contains(t, reply.Text, "Name: Buy milk")
	assert.Contains(t, reply.Text, "Deadline: 01.01.2026")
	assert.Equal(t, [2]string{"Buy milk", "01.01.2026"}, api.createdArg)

	// The flow is finished: state is back to Idle
	assert.Equal(t, StateIdle, dialog.sessions.Get(testChatID).State)
}

func TestCreationFlowInvalidDeadline(t *testing.T) {
	api := newFakeTaskAPI()
	dialog := NewDialog(api)
	ctx := context.Background()

	dialog.HandleCommand(ctx, testChatID, "add_task")
	dialog.HandleText(ctx, testChatID, "Buy milk")

	// The server rejects the deadline; its message is surfaced
	api.failWith = &client.StatusError{
		Code:    http.StatusBadRequest,
		Message: "invalid input for deadline: invalid date format",
	}
	reply := dialog.HandleText(ctx, testChatID, "31-12-2024")
	assert.Contains(t, reply.Text, "Error:")
	assert.Contains(t, reply.Text, "invalid date format")

	// State is cleared unconditionally: the next /add_task starts fresh
	assert.Equal(t, StateIdle, dialog.sessions.Get(testChatID).State)

	api.failWith = nil
	reply = dialog.HandleCommand(ctx, testChatID, "add_task")
	assert.Equal(t, msgPromptName, reply.Text)
	assert.Empty(t, dialog.sessions.Get(testChatID).Name)
}

func TestCreationFlowTransportFailure(t *testing.T) {
	api := newFakeTaskAPI()
	dialog := NewDialog(api)
	ctx := context.Background()

	dialog.HandleCommand(ctx, testChatID, "add_task")
	dialog.HandleText(ctx, testChatID, "Buy milk")

	api.failWith = errors.New("connection refused")
	reply := dialog.HandleText(ctx, testChatID, "01.01.2026")
	assert.Equal(t, msgGenericError, reply.Text)
	assert.Equal(t, StateIdle, dialog.sessions.Get(testChatID).State)
}

func TestCreationFlowsAreIndependentPerChat(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())
	ctx := context.Background()

	otherChatID := testChatID + 1

	dialog.HandleCommand(ctx, testChatID, "add_task")
	dialog.HandleText(ctx, testChatID, "Buy milk")

	// Another chat starting a flow does not disturb the first one
	dialog.HandleCommand(ctx, otherChatID, "add_task")

	assert.Equal(t, StateAwaitingDeadline, dialog.sessions.Get(testChatID).State)
	assert.Equal(t, "Buy milk", dialog.sessions.Get(testChatID).Name)
	assert.Equal(t, StateAwaitingName, dialog.sessions.Get(otherChatID).State)
}

func TestTextInIdleIsIgnored(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())

	reply := dialog.HandleText(context.Background(), testChatID, "hello")
	assert.Empty(t, reply.Text)
}

func TestDeleteMenuEmpty(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())

	reply := dialog.HandleCommand(context.Background(), testChatID, "delete_task")
	assert.Equal(t, msgEmptyList, reply.Text)
	assert.Empty(t, reply.Buttons)
}

func TestDeleteMenuListsOneButtonPerTask(t *testing.T) {
	api := newFakeTaskAPI()
	api.tasks = []client.Task{
		{ID: 1, Name: "Buy milk", Deadline: "01.01.2026"},
		{ID: 2, Name: "Walk dog", Deadline: "02.01.2026"},
	}
	dialog := NewDialog(api)

	reply := dialog.HandleCommand(context.Background(), testChatID, "delete_task")
	assert.Equal(t, msgChooseDelete, reply.Text)
	require.Len(t, reply.Buttons, 2)
	assert.Equal(t, "Buy milk", reply.Buttons[0].Label)
	assert.Equal(t, "delete_1", reply.Buttons[0].Data)
	assert.Equal(t, "Walk dog", reply.Buttons[1].Label)
	assert.Equal(t, "delete_2", reply.Buttons[1].Data)
}

func TestDeleteSelectionRemovesAndRelists(t *testing.T) {
	api := newFakeTaskAPI()
	api.tasks = []client.Task{
		{ID: 1, Name: "Buy milk", Deadline: "01.01.2026"},
		{ID: 2, Name: "Walk dog", Deadline: "02.01.2026"},
	}
	dialog := NewDialog(api)

	reply := dialog.HandleSelection(context.Background(), testChatID, "delete_1")
	assert.Contains(t, reply.Text, msgTaskDeleted)
	assert.Contains(t, reply.Text, "Walk dog")
	assert.NotContains(t, reply.Text, "Buy milk")
	require.Len(t, api.tasks, 1)
}

func TestDeleteSelectionLastTask(t *testing.T) {
	api := newFakeTaskAPI()
	api.tasks = []client.Task{{ID: 1, Name: "Buy milk", Deadline: "01.01.2026"}}
	dialog := NewDialog(api)

	reply := dialog.HandleSelection(context.Background(), testChatID, "delete_1")
	assert.Contains(t, reply.Text, msgTaskDeleted)
	assert.Contains(t, reply.Text, msgEmptyList)
}

func TestDeleteSelectionUnknownID(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())

	reply := dialog.HandleSelection(context.Background(), testChatID, "delete_99")
	assert.Contains(t, reply.Text, "Error:")
	assert.Contains(t, reply.Text, "not found")
}

func TestDeleteSelectionMalformedData(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())

	for _, data := range []string{"nonsense", "delete_abc", ""} {
		reply := dialog.HandleSelection(context.Background(), testChatID, data)
		assert.Equal(t, msgGenericError, reply.Text, "data %q", data)
	}
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())

	reply := dialog.HandleCommand(context.Background(), testChatID, "frobnicate")
	assert.Empty(t, reply.Text)
}

func TestAddTaskRestartsPendingFlow(t *testing.T) {
	dialog := NewDialog(newFakeTaskAPI())
	ctx := context.Background()

	dialog.HandleCommand(ctx, testChatID, "add_task")
	dialog.HandleText(ctx, testChatID, "Old name")

	// A fresh creation command restarts the dialogue from the name prompt
	reply := dialog.HandleCommand(ctx, testChatID, "add_task")
	assert.Equal(t, msgPromptName, reply.Text)

	session := dialog.sessions.Get(testChatID)
	assert.Equal(t, StateAwaitingName, session.State)
	assert.Empty(t, session.Name)
}

func TestDeleteMenuDataRoundTrip(t *testing.T) {
	api := newFakeTaskAPI()
	for i := int64(1); i <= 3; i++ {
		api.tasks = append(api.tasks, client.Task{
			ID:       i,
			Name:     "Task " + strconv.FormatInt(i, 10),
			Deadline: "01.01.2026",
		})
	}
	dialog := NewDialog(api)

	menu := dialog.HandleCommand(context.Background(), testChatID, "delete_task")
	require.Len(t, menu.Buttons, 3)

	// Selecting the middle entry deletes exactly that task
	reply := dialog.HandleSelection(context.Background(), testChatID, menu.Buttons[1].Data)
	assert.Contains(t, reply.Text, msgTaskDeleted)
	require.Len(t, api.tasks, 2)
	assert.Equal(t, int64(1), api.tasks[0].ID)
	assert.Equal(t, int64(3), api.tasks[1].ID)
}
