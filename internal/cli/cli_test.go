package cli

import (
	"bytes"
	"context"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiwariParth/tasklist/internal/app"
	"github.com/tiwariParth/tasklist/internal/classifier"
	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/storage/memory"
	"github.com/tiwariParth/tasklist/internal/task"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

// runMenu drives the menu with input over a store seeded with tasks.
func runMenu(t *testing.T, input string, seed ...models.Task) (string, *app.TodoApp, error) {
	t.Helper()
	ctx := context.Background()

	a := app.NewTodoApp(
		task.NewTaskStore(memory.NewMemoryStore(seed...)),
		app.WithRand(rand.New(rand.NewPCG(7, 7))),
	)
	require.NoError(t, a.Init(ctx))

	var out bytes.Buffer
	err := NewCLI(a, strings.NewReader(input), &out).Run(ctx)
	return out.String(), a, err
}

func TestRun_AddThenList(t *testing.T) {
	out, a, err := runMenu(t, "1\nwrite report\nhigh\n3\n6\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Task added successfully.")
	assert.Contains(t, out, "0  write report  High\n")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
	assert.Equal(t, []models.Task{{Description: "write report", Priority: models.High}}, a.ListTasks())
}

func TestRun_InvalidPriorityIsReported(t *testing.T) {
	out, a, err := runMenu(t, "1\nwrite report\nurgent\n3\n6\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Invalid priority! Please enter Low, Medium, or High.")
	assert.Contains(t, out, "No tasks available.")
	assert.Empty(t, a.ListTasks())
}

func TestRun_InvalidOption(t *testing.T) {
	out, _, err := runMenu(t, "9\nadd\n6\n")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Invalid option. Please select a valid option."))
}

func TestRun_EndOfInputExits(t *testing.T) {
	out, _, err := runMenu(t, "3")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks available.")
	assert.NotContains(t, out, "Goodbye!")
}

func TestRun_RemoveDeletesAllMatches(t *testing.T) {
	out, a, err := runMenu(t, "2\nbuy milk\n6\n",
		models.Task{Description: "buy milk", Priority: models.Low},
		models.Task{Description: "write report", Priority: models.High},
		models.Task{Description: "buy milk", Priority: models.Medium},
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Task removed successfully.")
	assert.Equal(t, []models.Task{{Description: "write report", Priority: models.High}}, a.ListTasks())
}

func TestRun_PrioritizeThenList(t *testing.T) {
	out, _, err := runMenu(t, "4\n3\n6\n",
		models.Task{Description: "email team", Priority: models.Medium},
		models.Task{Description: "write report", Priority: models.High},
		models.Task{Description: "buy milk", Priority: models.Low},
	)
	require.NoError(t, err)

	want := "Tasks prioritized successfully.\n" +
		"\nTask Management App\n1. Add Task\n2. Remove Task\n3. List Tasks\n" +
		"4. Prioritize Tasks\n5. Recommend Task\n6. Exit\n" +
		"Select an option: " +
		"#  DESCRIPTION   PRIORITY\n" +
		"0  write report  High\n" +
		"1  buy milk      Low\n" +
		"2  email team    Medium\n"
	assert.Contains(t, out, want)
}

func TestRun_RecommendEmpty(t *testing.T) {
	out, _, err := runMenu(t, "5\n6\n")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks available for recommendations.")
}

func TestRun_Recommend(t *testing.T) {
	out, a, err := runMenu(t, "5\n6\n",
		models.Task{Description: "fix production outage", Priority: models.High},
		models.Task{Description: "buy milk", Priority: models.Low},
		models.Task{Description: "database outage", Priority: models.High},
	)
	require.NoError(t, err)

	label := a.Model().Predict("fix production outage")
	assert.Contains(t, out, "Recommended task: ")
	assert.Contains(t, out, " - Priority: "+label+"\n")
}

func TestRun_TrainingFailureIsFatal(t *testing.T) {
	out, _, err := runMenu(t, "1\nthe\nhigh\n3\n6\n")
	require.ErrorIs(t, err, classifier.ErrEmptyVocabulary)
	assert.NotContains(t, out, "Goodbye!")
}

func TestRun_CanceledContext(t *testing.T) {
	a := app.NewTodoApp(task.NewTaskStore(memory.NewMemoryStore()))
	require.NoError(t, a.Init(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewCLI(a, strings.NewReader("6\n"), &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	a := app.NewTodoApp(task.NewTaskStore(memory.NewMemoryStore()))
	require.NoError(t, a.Init(context.Background()))

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- NewCLI(a, pr, &out).Run(ctx) }()

	// The write returns once the menu has consumed it; the next prompt
	// then blocks on the pipe with nothing to read.
	_, err := io.WriteString(pw, "3\n")
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, out.String(), "No tasks available.")
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}
}

func TestParsePriorityInput(t *testing.T) {
	tests := []struct {
		in      string
		want    models.Priority
		wantErr bool
	}{
		{in: "high", want: models.High},
		{in: " LOW ", want: models.Low},
		{in: "mEdIuM", want: models.Medium},
		{in: "Medium", want: models.Medium},
		{in: "urgent", wantErr: true},
		{in: "high priority", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriorityInput(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
