package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"todolist/internal/todo"
)

// DefaultTasksKey is the key the task list is stored under.
const DefaultTasksKey = "todoTasks"

// TaskRepository persists the whole task sequence as one JSON array under a
// fixed key. It implements todo.Persister.
type TaskRepository struct {
	kv  KV
	key string
	log log.FieldLogger
}

// NewTaskRepository returns a repository writing to key in kv. An empty key
// selects DefaultTasksKey; a nil logger discards output.
func NewTaskRepository(kv KV, key string, logger log.FieldLogger) *TaskRepository {
	if kv == nil {
		panic("storage.NewTaskRepository: kv is nil")
	}
	if key == "" {
		key = DefaultTasksKey
	}
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &TaskRepository{kv: kv, key: key, log: logger.WithField("key", key)}
}

// Key returns the storage key.
func (r *TaskRepository) Key() string {
	return r.key
}

// Save overwrites the stored sequence.
func (r *TaskRepository) Save(ctx context.Context, tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := sonic.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return r.kv.Set(ctx, r.key, string(data))
}

// Load returns the stored sequence. A missing key or unreadable content
// yields an empty sequence; only backend failures are returned as errors.
func (r *TaskRepository) Load(ctx context.Context) ([]todo.Task, error) {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []todo.Task{}, nil
	}

	var tasks []todo.Task
	if err := sonic.UnmarshalString(raw, &tasks); err != nil {
		r.log.WithError(err).Warn("storage.corrupt_tasks_discarded")
		return []todo.Task{}, nil
	}
	return r.sanitize(tasks), nil
}

// sanitize drops records that break the store's invariants: blank text or an
// id already seen earlier in the sequence.
func (r *TaskRepository) sanitize(tasks []todo.Task) []todo.Task {
	out := make([]todo.Task, 0, len(tasks))
	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			r.log.WithField("id", t.ID).Warn("storage.blank_task_dropped")
			continue
		}
		if seen[t.ID] {
			r.log.WithField("id", t.ID).Warn("storage.duplicate_task_dropped")
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
