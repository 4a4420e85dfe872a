// Package report assembles the per-deal view model every shell renders from.
package report

import (
	"time"

	"dealboard/internal/crm"
	"dealboard/internal/stats"
	"dealboard/internal/timeline"
)

// Options select and order the deals of a report.
type Options struct {
	Cohort     stats.Cohort
	SortBy     string
	Descending bool

	// Search narrows the report to one deal identifier within the cohort.
	Search string

	// StatusFilter restricts every deal's task list; "" or stats.ShowAll keeps all tasks.
	StatusFilter string

	Now time.Time
}

// TaskView is a task with its display urgency.
type TaskView struct {
	crm.Task
	Urgency stats.Urgency `json:"urgency,omitempty"`
}

// DealView is everything shown for one deal.
type DealView struct {
	Deal         crm.Deal           `json:"deal"`
	Cohort       stats.Cohort       `json:"cohort"`
	Counts       stats.StatusCounts `json:"counts"`
	Tasks        []TaskView         `json:"tasks"`
	Appointments []crm.Appointment  `json:"appointments"`
	Timeline     timeline.Timeline  `json:"timeline"`
}

// Report is the output of one render pass.
type Report struct {
	RunID      string       `json:"run_id"`
	Today      time.Time    `json:"today"`
	Cohort     stats.Cohort `json:"cohort"`
	SortBy     string       `json:"sort_by,omitempty"`
	Descending bool         `json:"descending,omitempty"`

	Summaries []stats.CohortSummary `json:"summaries"`
	Deals     []DealView            `json:"deals"`

	DealColumns        []string `json:"deal_columns"`
	TaskColumns        []string `json:"task_columns"`
	AppointmentColumns []string `json:"appointment_columns"`

	Unlinked []crm.Appointment     `json:"unlinked,omitempty"`
	Warnings []crm.CoercionWarning `json:"warnings,omitempty"`
}

// Build filters the deal relation to the cohort, sorts it, and expands every deal into its view.
func Build(rel *crm.Relations, opts Options) (*Report, error) {
	cohort := opts.Cohort
	if cohort == "" {
		cohort = stats.CohortAll
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	deals := stats.FilterCohort(rel.Deals, cohort)
	sortBy := ""
	if opts.SortBy != "" {
		col, err := stats.ResolveSortField(opts.SortBy)
		if err != nil {
			return nil, err
		}
		sortBy = col
		deals, err = stats.SortDeals(deals, col, opts.Descending)
		if err != nil {
			return nil, err
		}
	}
	if opts.Search != "" {
		if d, ok := stats.FindDeal(deals, opts.Search); ok {
			deals = []crm.Deal{d}
		} else {
			deals = nil
		}
	}

	r := &Report{
		RunID:              rel.RunID,
		Today:              crm.DateOf(now),
		Cohort:             cohort,
		SortBy:             sortBy,
		Descending:         sortBy != "" && opts.Descending,
		Summaries:          stats.SummarizeAll(rel.Deals),
		Deals:              make([]DealView, 0, len(deals)),
		DealColumns:        rel.DealColumns,
		TaskColumns:        rel.TaskColumns,
		AppointmentColumns: rel.AppointmentColumns,
		Unlinked:           rel.Unlinked,
		Warnings:           rel.Warnings,
	}
	for _, d := range deals {
		r.Deals = append(r.Deals, BuildDealView(rel, d, opts.StatusFilter, now))
	}
	return r, nil
}

// BuildDealView expands one deal. Status counts cover all of its tasks; the task list and
// timeline only the tasks passing statusFilter.
func BuildDealView(rel *crm.Relations, d crm.Deal, statusFilter string, now time.Time) DealView {
	all := rel.TasksFor(d.Regarding)
	shown := stats.FilterTasksByStatus(all, statusFilter)

	views := make([]TaskView, len(shown))
	for i, t := range shown {
		views[i] = TaskView{Task: t, Urgency: stats.CellUrgency(t.Status, t.DueDate, now)}
	}

	return DealView{
		Deal:         d,
		Cohort:       stats.CohortOf(d),
		Counts:       stats.CountStatuses(all),
		Tasks:        views,
		Appointments: rel.AppointmentsFor(d.Regarding),
		Timeline:     timeline.Build(d, shown, now),
	}
}
