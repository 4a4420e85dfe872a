package visuals

import (
	"strings"
	"testing"
	"time"

	"dealboard/internal/crm"
	"dealboard/internal/stats"
	"dealboard/internal/timeline"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestGenerateGanttChart(t *testing.T) {
	deal := crm.Deal{
		Regarding:         "Oak Ridge: Phase #2",
		ContractExecution: day(2024, 3, 1),
		ProjectedClosing:  day(2024, 9, 1),
		IPExpiration:      day(2024, 7, 15),
	}
	tasks := []crm.Task{
		{Subject: "Survey", Status: crm.StatusInProgress, StartDate: day(2024, 5, 1), DueDate: day(2024, 5, 30)},
		{Subject: "Title", Status: crm.StatusCompleted, StartDate: day(2024, 5, 1), DueDate: day(2024, 5, 10), ActualEnd: day(2024, 4, 20)},
	}
	tl := timeline.Build(deal, tasks, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	chart := GenerateGanttChart(tl)

	for _, want := range []string{
		"```mermaid\ngantt\n",
		"title Gantt Chart for Oak Ridge - Phase No.2",
		"section Milestones",
		"Contract Dates :m0, 2024-03-01, 2024-09-01",
		"Survey :crit, t0, 2024-05-01, 2024-05-30",
		"Title :done, t1, 2024-05-01, 2024-05-01",
		"Today :milestone, k0, 2024-06-01, 0d",
		"IP Expiration Date :milestone, k2, 2024-07-15, 0d",
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("chart missing %q\n%s", want, chart)
		}
	}
	if !strings.HasSuffix(chart, "```") {
		t.Error("chart must close its code fence")
	}
}

func TestGenerateGanttChart_Empty(t *testing.T) {
	tl := timeline.Build(crm.Deal{Regarding: "x"}, nil, time.Now())
	if got := GenerateGanttChart(tl); got != "" {
		t.Errorf("expected empty chart, got %q", got)
	}
}

func TestGenerateStatusPie(t *testing.T) {
	if GenerateStatusPie("x", stats.StatusCounts{}) != "" {
		t.Error("expected empty pie for no tasks")
	}
	pie := GenerateStatusPie("Oak", stats.StatusCounts{NotStarted: 1, InProgress: 2, Completed: 3, Total: 7})
	if !strings.Contains(pie, "\"In Progress\" : 2") || !strings.Contains(pie, "\"Other\" : 1") {
		t.Errorf("unexpected pie:\n%s", pie)
	}
}

func TestGenerateCohortChart(t *testing.T) {
	chart := GenerateCohortChart([]stats.CohortSummary{
		{Label: "All Deals", Deals: 10},
		{Label: "Letters of Intent", Deals: 4},
	})
	if !strings.Contains(chart, "bar [10, 4]") || !strings.Contains(chart, "y-axis \"Deals\" 0 --> 12") {
		t.Errorf("unexpected chart:\n%s", chart)
	}
}
