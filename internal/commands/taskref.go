package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todolist/internal/todo"
)

// IDPrefix marks a reference by task id rather than by position.
const IDPrefix = "id:"

// TaskRef is a parsed task reference.
type TaskRef struct {
	Position int   // 1-based position in the full list, newest first
	ID       int64 // set when ByID
	ByID     bool
	raw      string
}

func (r TaskRef) String() string { return r.raw }

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrTaskNotFound indicates a well-formed reference that names no task.
	ErrTaskNotFound = errors.New("task not found")
)

// ParseTaskRef parses the task reference in args[0] and returns the
// remaining args.
//
// Accepted forms:
//   - N      position as printed by `todo list` (unfiltered numbering)
//   - id:N   the task's id
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, nil, ErrTaskRefRequired
	}
	raw, rest := args[0], args[1:]

	if digits, ok := strings.CutPrefix(raw, IDPrefix); ok {
		if !isAllDigits(digits) {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", raw)
		}
		id, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", raw)
		}
		return TaskRef{ID: id, ByID: true, raw: raw}, rest, nil
	}

	if !isAllDigits(raw) {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", raw)
	}
	return TaskRef{Position: n, raw: raw}, rest, nil
}

// Resolve finds the task the reference names in the store's full list.
func (r TaskRef) Resolve(store *todo.Store) (todo.Task, error) {
	if r.ByID {
		task, ok := store.Task(r.ID)
		if !ok {
			return todo.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, r.raw)
		}
		return task, nil
	}

	tasks := store.Tasks()
	if r.Position < 1 || r.Position > len(tasks) {
		return todo.Task{}, fmt.Errorf("task number out of range: %d", r.Position)
	}
	return tasks[r.Position-1], nil
}

// positions maps task ids to their 1-based position in the full list, so a
// filtered listing still prints numbers that done/edit/rm accept.
func positions(tasks []todo.Task) map[int64]int {
	m := make(map[int64]int, len(tasks))
	for i, t := range tasks {
		m[t.ID] = i + 1
	}
	return m
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
