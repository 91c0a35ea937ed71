// Package render produces the HTML task page. html/template escapes every
// task text, so user input is never injected as markup.
package render

import (
	"html/template"
	"io"

	"todolist/internal/todo"
)

// Empty-state messages.
const (
	EmptyTitle     = "No tasks yet!"
	EmptyHint      = "Add your first task above."
	NoMatchTitle   = "No tasks match this filter."
	NoMatchHint    = "Try another filter."
	NoticeEmptyMsg = "Please type a task!"
)

// View is everything the task page shows.
type View struct {
	Tasks  []todo.Task // already filtered
	Counts todo.Counts
	Filter todo.Filter
	Notice string
}

// FilterButton is one entry of the filter bar.
type FilterButton struct {
	Name   todo.Filter
	Label  string
	Active bool
}

// Buttons returns the filter bar with the current filter marked active.
func (v View) Buttons() []FilterButton {
	labels := map[todo.Filter]string{
		todo.FilterAll:       "All",
		todo.FilterPending:   "Pending",
		todo.FilterCompleted: "Completed",
	}
	out := make([]FilterButton, 0, len(todo.Filters))
	for _, f := range todo.Filters {
		out = append(out, FilterButton{Name: f, Label: labels[f], Active: f == v.Filter})
	}
	return out
}

// Empty reports whether the store holds no tasks at all, as opposed to the
// filter hiding them.
func (v View) Empty() bool {
	return v.Counts.Total == 0
}

// Confirm describes a yes/no page guarding a destructive action.
type Confirm struct {
	Title   string
	Message string
	Action  string // POST target when confirmed
}

// Page writes the task page.
func Page(w io.Writer, v View) error {
	return templates.ExecuteTemplate(w, "page", v)
}

// EditPage writes the edit form for one task.
func EditPage(w io.Writer, t todo.Task, notice string) error {
	return templates.ExecuteTemplate(w, "edit", struct {
		Task   todo.Task
		Notice string
	}{t, notice})
}

// ConfirmPage writes a confirmation page.
func ConfirmPage(w io.Writer, c Confirm) error {
	return templates.ExecuteTemplate(w, "confirm", c)
}

var templates = template.Must(template.New("todo").Parse(layout))

const layout = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>To-do list</title>
<style>
body{font-family:sans-serif;max-width:40rem;margin:2rem auto}
.completed .task-text{text-decoration:line-through;color:#888}
.filter-btn.active{font-weight:bold}
.notice{color:#b00}
.task-item{display:flex;gap:.5rem;align-items:center}
.task-actions{margin-left:auto;display:flex;gap:.25rem}
</style>
</head>
<body>
<h1>To-do list</h1>
{{end}}

{{define "foot"}}</body>
</html>
{{end}}

{{define "notice"}}{{if .}}<p class="notice">{{.}}</p>
{{end}}{{end}}

{{define "page"}}{{template "head"}}
{{template "notice" .Notice}}<form method="post" action="/tasks">
<input type="text" name="text" id="taskInput" placeholder="New task" autofocus>
<button type="submit" id="addBtn">Add</button>
</form>
<nav>
{{range .Buttons}}<form method="post" action="/filter/{{.Name}}" style="display:inline">
<button type="submit" class="filter-btn{{if .Active}} active{{end}}" data-filter="{{.Name}}">{{.Label}}</button>
</form>
{{end}}</nav>
<p><span id="totalTasks">Total: {{.Counts.Total}}</span> <span id="completedTasks">Completed: {{.Counts.Completed}}</span></p>
{{if .Tasks}}<ul id="taskList">
{{range .Tasks}}<li class="task-item{{if .Completed}} completed{{end}}">
<form method="post" action="/tasks/{{.ID}}/toggle"><button type="submit" class="task-checkbox">{{if .Completed}}&#9745;{{else}}&#9744;{{end}}</button></form>
<span class="task-text">{{.Text}}</span>
<span class="task-actions"><a class="edit-btn" href="/tasks/{{.ID}}/edit">Edit</a> <a class="delete-btn" href="/tasks/{{.ID}}/delete">Delete</a></span>
</li>
{{end}}</ul>
{{else if .Empty}}<div class="empty-state">
<h3>` + EmptyTitle + `</h3>
<p>` + EmptyHint + `</p>
</div>
{{else}}<div class="empty-state">
<h3>` + NoMatchTitle + `</h3>
<p>` + NoMatchHint + `</p>
</div>
{{end}}<form method="post" action="/tasks/clear-completed" style="display:inline"><button type="submit" id="clearCompleted">Clear completed</button></form>
<a href="/tasks/clear-all" id="clearAll">Clear all</a>
{{template "foot"}}{{end}}

{{define "edit"}}{{template "head"}}
{{template "notice" .Notice}}<form method="post" action="/tasks/{{.Task.ID}}/edit">
<label for="text">Edit task:</label>
<input type="text" name="text" id="text" value="{{.Task.Text}}" autofocus>
<button type="submit">Save</button>
<a href="/">Cancel</a>
</form>
{{template "foot"}}{{end}}

{{define "confirm"}}{{template "head"}}
<h2>{{.Title}}</h2>
<p>{{.Message}}</p>
<form method="post" action="{{.Action}}">
<button type="submit">Yes</button>
<a href="/">No</a>
</form>
{{template "foot"}}{{end}}
`
