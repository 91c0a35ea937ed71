// Package query compiles user-supplied boolean expressions over tasks.
//
// Expressions use the expr language and see the fields id, text, completed
// and createdAt, for example:
//
//	!completed && text contains "milk"
//	id > 1700000000000
package query

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"todolist/internal/todo"
)

// env is the variable set an expression evaluates against.
type env struct {
	ID        int64  `expr:"id"`
	Text      string `expr:"text"`
	Completed bool   `expr:"completed"`
	CreatedAt string `expr:"createdAt"`
}

func envFor(t todo.Task) env {
	return env{ID: t.ID, Text: t.Text, Completed: t.Completed, CreatedAt: t.CreatedAt}
}

// Predicate reports whether a task matches a compiled expression.
type Predicate struct {
	source  string
	program *vm.Program
}

// Compile parses expression. An empty expression matches every task.
// Expressions that do not yield a boolean are rejected.
func Compile(expression string) (*Predicate, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return &Predicate{}, nil
	}
	program, err := expr.Compile(expression, expr.Env(env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expression, err)
	}
	return &Predicate{source: expression, program: program}, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.source
}

// Match evaluates the predicate for one task.
func (p *Predicate) Match(t todo.Task) (bool, error) {
	if p.program == nil {
		return true, nil
	}
	out, err := expr.Run(p.program, envFor(t))
	if err != nil {
		return false, fmt.Errorf("query %q: %w", p.source, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Filter returns the tasks matching the predicate, preserving order.
func (p *Predicate) Filter(tasks []todo.Task) ([]todo.Task, error) {
	out := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		ok, err := p.Match(t)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}
