package mcp

import (
	"strings"
	"testing"
	"time"

	"dealboard/cmd/mockgen/engine"
	"dealboard/internal/config"
	"dealboard/internal/report"
	"dealboard/internal/stats"
	"dealboard/internal/timeline"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// newTestServer generates a messy mock export into a temp dir and loads it.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	combined, appts := engine.Generate(engine.GeneratorConfig{Scenario: "messy", Count: 12, Now: testNow, Seed: 3})
	if _, err := engine.Save(dir, combined, appts); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, err := NewServer(&config.AppConfig{
		DataPath:            dir,
		ExportDir:           t.TempDir(),
		ColumnWidth:         20,
		EnableMermaidCharts: true,
		ReferenceDate:       testNow,
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if _, _, err := s.handleLoadWorkbooks(LoadWorkbooksInput{Paths: []string{combined.Name, appts.Name}}); err != nil {
		t.Fatalf("load_workbooks: %v", err)
	}
	return s
}

func TestHandleLoadWorkbooks(t *testing.T) {
	s := newTestServer(t)

	env, chart, err := s.handleLoadWorkbooks(LoadWorkbooksInput{Paths: []string{"deals_tasks.xlsx", "appointments.xlsx"}})
	if err != nil {
		t.Fatalf("reload from cache: %v", err)
	}
	data := env.Data.(map[string]any)
	if data["deals"].(int) != 12 {
		t.Errorf("deals = %v, want 12", data["deals"])
	}
	if data["unlinked"].(int) != 1 {
		t.Errorf("unlinked = %v, want 1", data["unlinked"])
	}
	if len(env.Warnings) == 0 {
		t.Error("expected coercion warnings for the messy export")
	}
	if !strings.Contains(chart, "```mermaid") {
		t.Errorf("expected cohort chart, got %q", chart)
	}

	sizes := data["cohort_sizes"].(map[stats.Cohort]int)
	total := 0
	for _, c := range stats.Partition {
		total += sizes[c]
	}
	if total != 12 || sizes[stats.CohortAll] != 12 {
		t.Errorf("partition cohorts cover %d deals, want 12 (sizes %v)", total, sizes)
	}
	if got := len(data["cohorts"].([]stats.CohortSummary)); got != len(stats.Partition)+1 {
		t.Errorf("got %d cohort summaries, want %d", got, len(stats.Partition)+1)
	}
}

func TestHandleLoadWorkbooks_Errors(t *testing.T) {
	s, err := NewServer(&config.AppConfig{DataPath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	if _, _, err := s.handleLoadWorkbooks(LoadWorkbooksInput{}); err == nil {
		t.Error("expected error for empty paths")
	}
	if _, _, err := s.handleLoadWorkbooks(LoadWorkbooksInput{Paths: []string{"missing.xlsx"}}); err == nil {
		t.Error("expected error for missing file")
	}
	if _, _, err := s.handleListDeals(ListDealsInput{}); err == nil || !strings.Contains(err.Error(), "load_workbooks") {
		t.Errorf("expected not-loaded error, got %v", err)
	}
}

func TestHandleListDeals(t *testing.T) {
	s := newTestServer(t)

	env, _, err := s.handleListDeals(ListDealsInput{Cohort: "approved", SortBy: "GF Submittal Date", Descending: true})
	if err != nil {
		t.Fatalf("list_deals: %v", err)
	}
	data := env.Data.(map[string]any)
	deals := data["deals"].([]DealSummary)
	if len(deals) == 0 {
		t.Fatal("expected approved deals")
	}
	for _, d := range deals {
		if d.Cohort != stats.CohortApproved {
			t.Errorf("%s is in cohort %s", d.Regarding, d.Cohort)
		}
		if d.GFSubmittal == "" || d.FinalApproval == "" {
			t.Errorf("%s lacks submittal or approval", d.Regarding)
		}
	}
	if data["label"] != "Greenfolder Approved, Not Yet Closed" {
		t.Errorf("label = %v", data["label"])
	}

	if _, _, err := s.handleListDeals(ListDealsInput{Cohort: "closed"}); err == nil {
		t.Error("expected error for unknown cohort")
	}
	if _, _, err := s.handleListDeals(ListDealsInput{SortBy: "Nope"}); err == nil {
		t.Error("expected error for unknown sort column")
	}
}

func TestHandleGetDeal(t *testing.T) {
	s := newTestServer(t)
	rel, _ := s.session.relations()
	name := rel.Deals[0].Regarding

	env, chart, err := s.handleGetDeal(GetDealInput{Regarding: strings.ToUpper(name), StatusFilter: "Completed"})
	if err != nil {
		t.Fatalf("get_deal: %v", err)
	}
	view := env.Data.(report.DealView)
	if view.Deal.Regarding != name {
		t.Errorf("got deal %q, want %q", view.Deal.Regarding, name)
	}
	if view.Counts.Total != len(rel.TasksFor(name)) {
		t.Errorf("counts cover %d tasks, want all %d", view.Counts.Total, len(rel.TasksFor(name)))
	}
	for _, tv := range view.Tasks {
		if tv.Status != "Completed" {
			t.Errorf("filtered task has status %q", tv.Status)
		}
	}
	if view.Counts.Total > 0 && !strings.Contains(chart, "pie") {
		t.Errorf("expected status pie, got %q", chart)
	}

	if _, _, err := s.handleGetDeal(GetDealInput{Regarding: "Nowhere 99"}); err == nil {
		t.Error("expected error for unknown deal")
	}
}

func TestHandleGetDealTimeline(t *testing.T) {
	s := newTestServer(t)
	rel, _ := s.session.relations()

	// Deal 0 of every four carries both milestone pairs.
	name := rel.Deals[0].Regarding
	env, chart, err := s.handleGetDealTimeline(GetDealTimelineInput{Regarding: name})
	if err != nil {
		t.Fatalf("get_deal_timeline: %v", err)
	}
	tl := env.Data.(timeline.Timeline)
	if len(tl.Milestones()) != 2 {
		t.Errorf("got %d milestones, want 2", len(tl.Milestones()))
	}
	if !strings.Contains(chart, "gantt") {
		t.Errorf("expected gantt chart, got %q", chart)
	}
}

func TestHandleExportWorkbook(t *testing.T) {
	s := newTestServer(t)
	dir := t.TempDir()

	env, chart, err := s.handleExportWorkbook(ExportWorkbookInput{Cohort: "in_schedule", Dir: dir})
	if err != nil {
		t.Fatalf("export_workbook: %v", err)
	}
	if chart != "" {
		t.Errorf("export should not chart, got %q", chart)
	}
	data := env.Data.(map[string]any)
	path := data["path"].(string)
	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, "_20240601_000000.xlsx") {
		t.Errorf("unexpected export path %q", path)
	}
}
