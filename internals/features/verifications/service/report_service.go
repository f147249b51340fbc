// CSV compliance report. The format is a wire contract with existing
// spreadsheets: header "Worker,Module,Completed,Score,Passed", score
// rendered as "NN%", filename clearproof-report-YYYY-MM-DD.csv.
package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

type ReportRow struct {
	WorkerName  string
	ModuleTitle string
	CompletedAt time.Time
	Score       int
	Passed      bool
}

var reportHeader = []string{"Worker", "Module", "Completed", "Score", "Passed"}

// BuildReportCSV renders rows in the contract format.
func BuildReportCSV(rows []ReportRow) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write(reportHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		passed := "No"
		if r.Passed {
			passed = "Yes"
		}
		record := []string{
			r.WorkerName,
			r.ModuleTitle,
			r.CompletedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d%%", r.Score),
			passed,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportFilename is clearproof-report-YYYY-MM-DD.csv for the given day.
func ReportFilename(day time.Time) string {
	return "clearproof-report-" + day.Format("2006-01-02") + ".csv"
}
