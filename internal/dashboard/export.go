package dashboard

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"suivi/internal/models"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// csvDateLayout is the short date form used for created dates in CSV
// exports. The deployment is French; a fixed dd/mm/yyyy keeps exports
// stable across hosts instead of chasing the invoking locale.
const csvDateLayout = "02/01/2006"

// ExportStats is the summary block embedded in JSON exports.
// CompletionRate is rounded to the nearest integer percent.
type ExportStats struct {
	TotalTasks      int `json:"totalTasks"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
	CompletionRate  int `json:"completionRate"`
}

// ComputeExportStats tallies the filtered tasks for the export summary.
func ComputeExportStats(tasks []models.Task) ExportStats {
	var stats ExportStats
	stats.TotalTasks = len(tasks)
	for i := range tasks {
		switch tasks[i].Status {
		case models.StatusPending:
			stats.PendingTasks++
		case models.StatusInProgress:
			stats.InProgressTasks++
		case models.StatusCompleted:
			stats.CompletedTasks++
		}
	}

	denom := stats.TotalTasks
	if denom == 0 {
		denom = 1
	}
	stats.CompletionRate = int(math.Round(float64(stats.CompletedTasks) / float64(denom) * 100))
	return stats
}

// Export serializes the filtered tasks in the requested format.
// JSON exports are a pretty-printed object carrying the stats block, the
// raw task array, and the export timestamp; CSV exports are the fixed
// five-column table the web UI downloads.
func Export(tasks []models.Task, format string, now time.Time) ([]byte, error) {
	switch format {
	case FormatJSON:
		return exportJSON(tasks, now)
	case FormatCSV:
		return exportCSV(tasks)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func exportJSON(tasks []models.Task, now time.Time) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	payload := struct {
		Stats      ExportStats   `json:"stats"`
		Tasks      []models.Task `json:"tasks"`
		ExportDate string        `json:"exportDate"`
	}{
		Stats:      ComputeExportStats(tasks),
		Tasks:      tasks,
		ExportDate: now.UTC().Format(time.RFC3339),
	}
	return json.MarshalIndent(payload, "", "  ")
}

func exportCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Task Title", "Project", "Status", "Priority", "Created Date"}); err != nil {
		return nil, err
	}
	for i := range tasks {
		t := &tasks[i]

		project := t.ProjectName()
		if project == "" {
			project = "N/A"
		}
		priority := t.Priority
		if priority == "" {
			priority = "Normal"
		}
		created := ""
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.Format(csvDateLayout)
		}

		if err := w.Write([]string{t.Name, project, t.Status, priority, created}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename names a download: dashboard-export-<ISO date>.<ext>.
func ExportFilename(format string, now time.Time) string {
	return fmt.Sprintf("dashboard-export-%s.%s", now.UTC().Format("2006-01-02"), format)
}

// ExportMIME returns the MIME type the download sink should declare.
func ExportMIME(format string) string {
	if format == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}
