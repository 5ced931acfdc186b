package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/tiwariParth/tasklist/internal/classifier"
	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/task"
)

var (
	// ErrNoTasks is returned by RecommendTask on an empty store.
	ErrNoTasks = errors.New("no tasks available")

	// ErrNoModel is returned when a recommendation is requested but no
	// model has been trained. Init and AddTask always train over a
	// non-empty store, so this is only reachable when Init was skipped.
	ErrNoModel = errors.New("no trained model")

	// ErrNoCandidate is returned when no stored task carries the predicted
	// priority. This can happen after removals, which do not retrain.
	ErrNoCandidate = errors.New("no task has the predicted priority")
)

// Recommendation is the task picked by RecommendTask and the label the
// model predicted.
type Recommendation struct {
	Task      models.Task
	Predicted models.Priority
}

// Option configures a TodoApp.
type Option func(*TodoApp)

// WithSortOrder sets the order used by PrioritizeTasks.
func WithSortOrder(order task.SortOrder) Option {
	return func(a *TodoApp) { a.sortOrder = order }
}

// WithClassifierOptions sets the training hyper-parameters.
func WithClassifierOptions(opts classifier.Options) Option {
	return func(a *TodoApp) { a.trainOpts = opts }
}

// WithRand sets the random source used to pick among candidates.
func WithRand(r *rand.Rand) Option {
	return func(a *TodoApp) { a.rng = r }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *TodoApp) { a.logger = logger }
}

// TodoApp runs the task operations over a TaskStore and the current
// classifier snapshot.
type TodoApp struct {
	store     *task.TaskStore
	model     *classifier.Model
	sortOrder task.SortOrder
	trainOpts classifier.Options
	rng       *rand.Rand
	logger    *slog.Logger
}

// NewTodoApp creates an app over store. Call Init before use.
func NewTodoApp(store *task.TaskStore, opts ...Option) *TodoApp {
	a := &TodoApp{
		store:     store,
		sortOrder: task.SortLexical,
		trainOpts: classifier.DefaultOptions(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init loads the persisted tasks and trains the first model. An empty
// store leaves the app without a model; any other training failure is
// returned.
func (a *TodoApp) Init(ctx context.Context) error {
	if err := a.store.Load(ctx); err != nil {
		return err
	}
	a.logger.Debug("tasks loaded", "count", a.store.Len())

	if a.store.Len() == 0 {
		return nil
	}
	return a.retrain()
}

// AddTask appends a task, persists the table and retrains. The table is
// already saved when a training error is returned.
func (a *TodoApp) AddTask(ctx context.Context, description string, priority models.Priority) error {
	t, err := models.NewTask(description, priority)
	if err != nil {
		return err
	}
	if err := a.store.Add(t); err != nil {
		return err
	}
	if err := a.store.Save(ctx); err != nil {
		return err
	}
	a.logger.Debug("task added", "description", description, "priority", priority)
	return a.retrain()
}

// RemoveTask deletes every task with the given description and persists
// the table. The model is not retrained.
func (a *TodoApp) RemoveTask(ctx context.Context, description string) (int, error) {
	removed := a.store.Remove(description)
	if err := a.store.Save(ctx); err != nil {
		return removed, err
	}
	a.logger.Debug("tasks removed", "description", description, "count", removed)
	return removed, nil
}

// ListTasks returns the tasks in their current order.
func (a *TodoApp) ListTasks() []models.Task {
	return a.store.Tasks()
}

// PrioritizeTasks sorts the table by priority and persists it.
func (a *TodoApp) PrioritizeTasks(ctx context.Context) error {
	a.store.SortByPriority(a.sortOrder)
	if err := a.store.Save(ctx); err != nil {
		return err
	}
	a.logger.Debug("tasks prioritized", "order", a.sortOrder)
	return nil
}

// RecommendTask predicts a priority for every stored description, takes
// the prediction for the first row, and returns a random task whose stored
// priority equals it.
func (a *TodoApp) RecommendTask() (Recommendation, error) {
	tasks := a.store.Tasks()
	if len(tasks) == 0 {
		return Recommendation{}, ErrNoTasks
	}
	if a.model == nil {
		return Recommendation{}, ErrNoModel
	}

	texts := make([]string, len(tasks))
	for i, t := range tasks {
		texts[i] = t.Description
	}
	label := a.model.PredictAll(texts)[0]
	predicted, err := models.ParsePriority(label)
	if err != nil {
		return Recommendation{}, fmt.Errorf("unexpected model label: %w", err)
	}

	var candidates []models.Task
	for _, t := range tasks {
		if t.Priority == predicted {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return Recommendation{}, fmt.Errorf("%w: %s", ErrNoCandidate, predicted)
	}

	return Recommendation{
		Task:      candidates[a.intN(len(candidates))],
		Predicted: predicted,
	}, nil
}

// Model returns the current classifier snapshot, or nil.
func (a *TodoApp) Model() *classifier.Model {
	return a.model
}

func (a *TodoApp) retrain() error {
	tasks := a.store.Tasks()
	samples := make([]classifier.Sample, len(tasks))
	for i, t := range tasks {
		samples[i] = classifier.Sample{Text: t.Description, Label: t.Priority.String()}
	}

	model, err := classifier.Train(samples, a.trainOpts)
	if err != nil {
		return fmt.Errorf("failed to train model: %w", err)
	}
	a.model = model
	a.logger.Debug("model trained",
		"samples", model.Samples(),
		"vocabulary", model.VocabularySize(),
		"classes", model.Classes(),
	)
	return nil
}

func (a *TodoApp) intN(n int) int {
	if a.rng != nil {
		return a.rng.IntN(n)
	}
	return rand.IntN(n)
}
