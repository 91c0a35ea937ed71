package todo

import (
	"fmt"
	"strings"
)

// Filter selects a view over the task collection.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters lists the valid filters in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

var predicates = map[Filter]func(Task) bool{
	FilterAll:       func(Task) bool { return true },
	FilterCompleted: func(t Task) bool { return t.Completed },
	FilterPending:   func(t Task) bool { return !t.Completed },
}

// ParseFilter converts a filter name (case-insensitive, trimmed) to a Filter.
// An empty name means FilterAll.
func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FilterAll, nil
	}
	f := Filter(name)
	if _, ok := predicates[f]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
	return f, nil
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	_, ok := predicates[f]
	return ok
}

// Match reports whether the task belongs to the view selected by f.
// Unknown filters match nothing.
func (f Filter) Match(t Task) bool {
	pred, ok := predicates[f]
	return ok && pred(t)
}

// Apply returns the tasks matching f in their stored order.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
