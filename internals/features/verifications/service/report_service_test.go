package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportCSV(t *testing.T) {
	rows := []ReportRow{
		{
			WorkerName:  "Ana Kowalska",
			ModuleTitle: "Forklift Safety",
			CompletedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			Score:       100,
			Passed:      true,
		},
		{
			WorkerName:  "Jo, the \"new\" one",
			ModuleTitle: "Ladder Safety",
			CompletedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			Score:       60,
			Passed:      false,
		},
	}

	out, err := BuildReportCSV(rows)
	require.NoError(t, err)

	want := "Worker,Module,Completed,Score,Passed\n" +
		"Ana Kowalska,Forklift Safety,2026-03-14 09:30,100%,Yes\n" +
		"\"Jo, the \"\"new\"\" one\",Ladder Safety,2026-03-14 10:00,60%,No\n"
	assert.Equal(t, want, string(out))
}

func TestBuildReportCSVEmpty(t *testing.T) {
	out, err := BuildReportCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Worker,Module,Completed,Score,Passed\n", string(out))
}

func TestReportFilename(t *testing.T) {
	day := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "clearproof-report-2026-08-29.csv", ReportFilename(day))
}
