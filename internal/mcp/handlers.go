package mcp

import (
	"fmt"

	"dealboard/internal/crm"
	"dealboard/internal/export"
	"dealboard/internal/report"
	"dealboard/internal/stats"
	"dealboard/internal/timeline"
	"dealboard/internal/visuals"

	"github.com/rs/zerolog/log"
)

// DealSummary is one line of a deal listing.
type DealSummary struct {
	Regarding        string             `json:"regarding"`
	SubMarket        string             `json:"sub_market,omitempty"`
	Stage            string             `json:"stage,omitempty"`
	Cohort           stats.Cohort       `json:"cohort"`
	GFSubmittal      string             `json:"gf_submittal,omitempty"`
	FinalApproval    string             `json:"final_approval,omitempty"`
	ProjectedClosing string             `json:"projected_closing,omitempty"`
	Tasks            stats.StatusCounts `json:"tasks"`
	Appointments     int                `json:"appointments"`
}

func (s *Server) handleLoadWorkbooks(in LoadWorkbooksInput) (ResponseEnvelope, string, error) {
	rel, err := s.session.load(in.Paths, in.Reload)
	if err != nil {
		return ResponseEnvelope{}, "", err
	}

	summaries := stats.SummarizeAll(rel.Deals)
	data := map[string]any{
		"run_id":       rel.RunID,
		"deals":        len(rel.Deals),
		"tasks":        len(rel.Tasks),
		"appointments": len(rel.Appointments),
		"unlinked":     len(rel.Unlinked),
		"cohort_sizes": stats.CountCohorts(rel.Deals),
		"cohorts":      summaries,
	}

	guidance := []string{"Use list_deals with a cohort to browse, then get_deal or get_deal_timeline for detail."}
	if len(rel.AppointmentColumns) == 0 {
		guidance = append(guidance, "Only a Deals+Tasks table was loaded; appointments are empty.")
	}
	if len(rel.Unlinked) > 0 {
		guidance = append(guidance, fmt.Sprintf("%d appointments reference deals that are not in the Deals+Tasks export.", len(rel.Unlinked)))
	}

	return ResponseEnvelope{Data: data, Warnings: describeWarnings(rel.Warnings), Guidance: guidance},
		visuals.GenerateCohortChart(summaries), nil
}

func (s *Server) handleListDeals(in ListDealsInput) (ResponseEnvelope, string, error) {
	rel, err := s.session.relations()
	if err != nil {
		return ResponseEnvelope{}, "", err
	}
	cohort, err := stats.ParseCohort(in.Cohort)
	if err != nil {
		return ResponseEnvelope{}, "", err
	}

	r, err := report.Build(rel, report.Options{
		Cohort:     cohort,
		SortBy:     in.SortBy,
		Descending: in.Descending,
		Now:        s.cfg.Now(),
	})
	if err != nil {
		return ResponseEnvelope{}, "", err
	}

	deals := make([]DealSummary, len(r.Deals))
	for i, v := range r.Deals {
		deals[i] = summarize(v)
	}

	data := map[string]any{
		"cohort":  cohort,
		"label":   cohort.Label(),
		"sort_by": r.SortBy,
		"count":   len(deals),
		"deals":   deals,
	}
	return ResponseEnvelope{Data: data}, visuals.GenerateCohortChart(r.Summaries), nil
}

func (s *Server) handleGetDeal(in GetDealInput) (ResponseEnvelope, string, error) {
	rel, deal, err := s.findDeal(in.Regarding)
	if err != nil {
		return ResponseEnvelope{}, "", err
	}

	view := report.BuildDealView(rel, deal, in.StatusFilter, s.cfg.Now())

	var guidance []string
	overdue := 0
	for _, t := range view.Tasks {
		if t.Urgency == stats.UrgencyOverdue {
			overdue++
		}
	}
	if overdue > 0 {
		guidance = append(guidance, fmt.Sprintf("%d task(s) are past due and not completed.", overdue))
	}

	return ResponseEnvelope{Data: view, Guidance: guidance},
		visuals.GenerateStatusPie(deal.Regarding, view.Counts), nil
}

func (s *Server) handleGetDealTimeline(in GetDealTimelineInput) (ResponseEnvelope, string, error) {
	rel, deal, err := s.findDeal(in.Regarding)
	if err != nil {
		return ResponseEnvelope{}, "", err
	}

	tasks := stats.FilterTasksByStatus(rel.TasksFor(deal.Regarding), in.StatusFilter)
	tl := timeline.Build(deal, tasks, s.cfg.Now())

	var guidance []string
	if tl.IsEmpty() {
		guidance = append(guidance, "No valid data to display in the timeline for this deal.")
	} else if len(tl.Milestones()) == 0 {
		guidance = append(guidance, "Milestone bars need both contract execution and projected closing, or both Green Folder submittal and meeting dates.")
	}

	return ResponseEnvelope{Data: tl, Guidance: guidance}, visuals.GenerateGanttChart(tl), nil
}

func (s *Server) handleExportWorkbook(in ExportWorkbookInput) (ResponseEnvelope, string, error) {
	rel, err := s.session.relations()
	if err != nil {
		return ResponseEnvelope{}, "", err
	}
	cohort, err := stats.ParseCohort(in.Cohort)
	if err != nil {
		return ResponseEnvelope{}, "", err
	}

	now := s.cfg.Now()
	r, err := report.Build(rel, report.Options{
		Cohort:       cohort,
		SortBy:       in.SortBy,
		Descending:   in.Descending,
		StatusFilter: in.StatusFilter,
		Now:          now,
	})
	if err != nil {
		return ResponseEnvelope{}, "", err
	}

	dir := in.Dir
	if dir == "" {
		dir = s.cfg.ExportDir
	}
	path, err := export.WriteFile(dir, r, s.cfg.ColumnWidth, now)
	if err != nil {
		return ResponseEnvelope{}, "", err
	}

	log.Info().Str("path", path).Str("cohort", string(cohort)).Msg("Workbook exported")
	return ResponseEnvelope{Data: map[string]any{"path": path, "deals": len(r.Deals)}}, "", nil
}

func (s *Server) findDeal(regarding string) (*crm.Relations, crm.Deal, error) {
	rel, err := s.session.relations()
	if err != nil {
		return nil, crm.Deal{}, err
	}
	deal, ok := stats.FindDeal(rel.Deals, regarding)
	if !ok {
		return nil, crm.Deal{}, fmt.Errorf("deal %q not found", regarding)
	}
	return rel, deal, nil
}

func summarize(v report.DealView) DealSummary {
	return DealSummary{
		Regarding:        v.Deal.Regarding,
		SubMarket:        v.Deal.SubMarket,
		Stage:            v.Deal.Stage,
		Cohort:           v.Cohort,
		GFSubmittal:      crm.FormatDate(v.Deal.GFSubmittal),
		FinalApproval:    crm.FormatDate(v.Deal.FinalApproval),
		ProjectedClosing: crm.FormatDate(v.Deal.ProjectedClosing),
		Tasks:            v.Counts,
		Appointments:     len(v.Appointments),
	}
}
