package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"todolist/internal/render"
	"todolist/internal/todo"
)

// Notice codes carried in the redirect query string.
const (
	noticeEmpty      = "empty"
	noticeSaveFailed = "save_failed"
)

var notices = map[string]string{
	noticeEmpty:      render.NoticeEmptyMsg,
	noticeSaveFailed: "Your change was applied but could not be saved.",
}

type tasksResponse struct {
	Filter todo.Filter `json:"filter"`
	Counts todo.Counts `json:"counts"`
	Tasks  []todo.Task `json:"tasks"`
}

func (s *Server) register(e *echo.Echo) {
	e.GET("/", s.index)
	e.POST("/tasks", s.addTask)
	e.POST("/tasks/clear-completed", s.clearCompleted)
	e.GET("/tasks/clear-all", s.confirmClearAll)
	e.POST("/tasks/clear-all", s.clearAll)
	e.POST("/tasks/:id/toggle", s.toggleTask)
	e.GET("/tasks/:id/edit", s.editForm)
	e.POST("/tasks/:id/edit", s.editTask)
	e.GET("/tasks/:id/delete", s.confirmDelete)
	e.POST("/tasks/:id/delete", s.deleteTask)
	e.POST("/filter/:name", s.setFilter)
	e.GET("/api/tasks", s.apiTasks)
	e.GET("/healthz", healthz)
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (s *Server) index(c echo.Context) error {
	view := render.View{
		Tasks:  s.store.FilteredTasks(),
		Counts: s.store.Counts(),
		Filter: s.store.Filter(),
		Notice: notices[c.QueryParam("notice")],
	}
	return s.html(c, http.StatusOK, func(buf *bytes.Buffer) error {
		return render.Page(buf, view)
	})
}

func (s *Server) addTask(c echo.Context) error {
	_, err := s.store.AddTask(c.Request().Context(), c.FormValue("text"))
	return s.afterMutation(c, err)
}

func (s *Server) toggleTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	_, err = s.store.ToggleTask(c.Request().Context(), id)
	return s.afterMutation(c, err)
}

func (s *Server) editForm(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	task, ok := s.store.Task(id)
	if !ok {
		return redirectHome(c, "")
	}
	notice := notices[c.QueryParam("notice")]
	return s.html(c, http.StatusOK, func(buf *bytes.Buffer) error {
		return render.EditPage(buf, task, notice)
	})
}

func (s *Server) editTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	_, err = s.store.EditTask(c.Request().Context(), id, c.FormValue("text"))
	if errors.Is(err, todo.ErrEmptyText) {
		// A blank edit counts as cancelled.
		return redirectHome(c, "")
	}
	return s.afterMutation(c, err)
}

func (s *Server) confirmDelete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	task, ok := s.store.Task(id)
	if !ok {
		return redirectHome(c, "")
	}
	return s.html(c, http.StatusOK, func(buf *bytes.Buffer) error {
		return render.ConfirmPage(buf, render.Confirm{
			Title:   "Delete task",
			Message: fmt.Sprintf("Are you sure you want to delete %q?", task.Text),
			Action:  fmt.Sprintf("/tasks/%d/delete", task.ID),
		})
	})
}

func (s *Server) deleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	_, err = s.store.DeleteTask(c.Request().Context(), id)
	return s.afterMutation(c, err)
}

func (s *Server) clearCompleted(c echo.Context) error {
	_, err := s.store.ClearCompleted(c.Request().Context())
	return s.afterMutation(c, err)
}

func (s *Server) confirmClearAll(c echo.Context) error {
	return s.html(c, http.StatusOK, func(buf *bytes.Buffer) error {
		return render.ConfirmPage(buf, render.Confirm{
			Title:   "Clear all tasks",
			Message: "Are you sure you want to delete ALL tasks?",
			Action:  "/tasks/clear-all",
		})
	})
}

func (s *Server) clearAll(c echo.Context) error {
	_, err := s.store.ClearAll(c.Request().Context())
	return s.afterMutation(c, err)
}

func (s *Server) setFilter(c echo.Context) error {
	f, err := todo.ParseFilter(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.store.SetFilter(f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return redirectHome(c, "")
}

// apiTasks returns the filtered view as JSON. The filter query parameter
// overrides the store's filter for this request only.
func (s *Server) apiTasks(c echo.Context) error {
	f := s.store.Filter()
	if name := c.QueryParam("filter"); name != "" {
		parsed, err := todo.ParseFilter(name)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		f = parsed
	}
	return c.JSON(http.StatusOK, tasksResponse{
		Filter: f,
		Counts: s.store.Counts(),
		Tasks:  f.Apply(s.store.Tasks()),
	})
}

// afterMutation maps store errors to a notice and redirects to the page.
func (s *Server) afterMutation(c echo.Context, err error) error {
	switch {
	case err == nil:
		return redirectHome(c, "")
	case errors.Is(err, todo.ErrEmptyText):
		return redirectHome(c, noticeEmpty)
	case errors.Is(err, todo.ErrPersist):
		s.log.WithError(err).Error("http.save_failed")
		return redirectHome(c, noticeSaveFailed)
	default:
		return err
	}
}

func (s *Server) html(c echo.Context, status int, fn func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func redirectHome(c echo.Context, notice string) error {
	target := "/"
	if notice != "" {
		target += "?notice=" + url.QueryEscape(notice)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}
