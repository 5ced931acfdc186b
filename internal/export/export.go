// Package export renders the task table as CSV, JSON or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/tiwariParth/tasklist/internal/models"
	"github.com/tiwariParth/tasklist/internal/storage"
)

// Formats lists the supported export formats.
var Formats = []string{"csv", "json", "pdf"}

// Export renders tasks in the given format.
func Export(tasks []models.Task, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		if tasks == nil {
			tasks = []models.Task{}
		}
		return json.MarshalIndent(tasks, "", "  ")
	case "csv":
		var buf bytes.Buffer
		if err := writeCSV(&buf, tasks); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "pdf":
		return renderPDF(tasks)
	default:
		return nil, fmt.Errorf("unknown format %s (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func renderPDF(tasks []models.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)

	if len(tasks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(40, 6, "No tasks available.")
	} else {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
		pdf.CellFormat(140, 7, "Description", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, "Priority", "1", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		// Core fonts are cp1252; translate so accented descriptions survive.
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		for i, t := range tasks {
			pdf.CellFormat(12, 6, fmt.Sprint(i), "1", 0, "C", false, 0, "")
			pdf.CellFormat(140, 6, tr(t.Description), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, t.Priority.String(), "1", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(out io.Writer, tasks []models.Task) error {
	w := csv.NewWriter(out)
	if err := w.Write(storage.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range tasks {
		if err := w.Write([]string{t.Description, t.Priority.String()}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
