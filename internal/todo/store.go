package todo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Persister is the durable storage the store writes through after every
// mutation. Load returns an empty slice when nothing was stored yet.
type Persister interface {
	Save(ctx context.Context, tasks []Task) error
	Load(ctx context.Context) ([]Task, error)
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(clock Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTimestampLayout sets the time layout used for CreatedAt.
func WithTimestampLayout(layout string) Option {
	return func(s *Store) {
		if layout != "" {
			s.layout = layout
		}
	}
}

// WithLogger sets the logger for mutation and persistence events.
func WithLogger(logger log.FieldLogger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// Store owns the task collection and the current filter. Every mutation is
// written through to the Persister before the call returns. Calls are
// serialized, so one event completes before the next begins.
type Store struct {
	mu      sync.Mutex
	tasks   []Task
	filter  Filter
	ids     idGenerator
	persist Persister
	clock   Clock
	layout  string
	log     log.FieldLogger
}

// NewStore loads the persisted tasks and returns a store holding them.
func NewStore(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	discard := log.New()
	discard.SetOutput(io.Discard)

	s := &Store{
		filter:  FilterAll,
		persist: p,
		clock:   time.Now,
		layout:  DefaultTimestampLayout,
		log:     discard,
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = tasks
	if s.tasks == nil {
		s.tasks = []Task{}
	}
	for _, t := range s.tasks {
		s.ids.observe(t.ID)
	}
	s.log.WithField("tasks", len(s.tasks)).Debug("store.loaded")
	return s, nil
}

// AddTask prepends a new pending task. Blank text is rejected with
// ErrEmptyText and leaves the store unchanged.
func (s *Store) AddTask(ctx context.Context, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	task := Task{
		ID:        s.ids.next(now.UnixMilli()),
		Text:      text,
		Completed: false,
		CreatedAt: now.Format(s.layout),
	}
	s.tasks = append([]Task{task}, s.tasks...)
	s.log.WithField("id", task.ID).Debug("store.add")
	return task, s.save(ctx)
}

// ToggleTask flips the completion state of the task with the given id.
// Unknown ids are ignored and reported as found=false.
func (s *Store) ToggleTask(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.log.WithFields(log.Fields{"id": id, "completed": s.tasks[i].Completed}).Debug("store.toggle")
	return true, s.save(ctx)
}

// EditTask replaces the text of the task with the given id. A blank edit is
// rejected with ErrEmptyText and changes nothing.
func (s *Store) EditTask(ctx context.Context, id int64, newText string) (bool, error) {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return false, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Text = newText
	s.log.WithField("id", id).Debug("store.edit")
	return true, s.save(ctx)
}

// DeleteTask removes the task with the given id. Confirmation is the
// caller's job; the store removes unconditionally.
func (s *Store) DeleteTask(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.log.WithField("id", id).Debug("store.delete")
	return true, s.save(ctx)
}

// ClearCompleted removes every completed task and returns how many were removed.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := FilterPending.Apply(s.tasks)
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	s.log.WithField("removed", removed).Debug("store.clear_completed")
	return removed, s.save(ctx)
}

// ClearAll removes every task and returns how many were removed.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.tasks)
	s.tasks = []Task{}
	s.log.WithField("removed", removed).Debug("store.clear_all")
	return removed, s.save(ctx)
}

// SetFilter selects the view returned by FilteredTasks.
func (s *Store) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownFilter, f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return nil
}

// Filter returns the current filter.
func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// FilteredTasks returns the tasks selected by the current filter, newest first.
func (s *Store) FilteredTasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Apply(s.tasks)
}

// Tasks returns a copy of every task, newest first.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Task looks up a single task by id.
func (s *Store) Task(id int64) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Counts returns the total and completed task counts.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Counts{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			c.Completed++
		}
	}
	return c
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// save must be called with mu held.
func (s *Store) save(ctx context.Context) error {
	if err := s.persist.Save(ctx, s.snapshot()); err != nil {
		s.log.WithError(err).Warn("store.save_failed")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
