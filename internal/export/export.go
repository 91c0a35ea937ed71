// Package export writes the task list as JSON, CSV or PDF.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/jung-kurt/gofpdf"

	"todolist/internal/todo"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// Export writes tasks to w in the named format.
func Export(w io.Writer, format string, tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return exportJSON(w, tasks)
	case "csv":
		return exportCSV(w, tasks)
	case "pdf":
		return exportPDF(w, tasks)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func exportJSON(w io.Writer, tasks []todo.Task) error {
	data, err := sonic.ConfigStd.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func exportCSV(w io.Writer, tasks []todo.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "completed", "createdAt"}); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write([]string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.Completed), t.CreatedAt}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportPDF(w io.Writer, tasks []todo.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Tasks", true)
	pdf.AddPage()

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %d  Completed: %d", len(tasks), completed))
	pdf.Ln(10)

	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  (%s)", mark, t.Text, t.CreatedAt)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}
	return pdf.Output(w)
}
