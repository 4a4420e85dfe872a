package stats

import (
	"time"

	"dealboard/internal/crm"
)

// StatusCounts tallies a deal's tasks. Labels outside the three tracked ones only count toward Total.
type StatusCounts struct {
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// CountStatuses tallies tasks by status label.
func CountStatuses(tasks []crm.Task) StatusCounts {
	var c StatusCounts
	for _, t := range tasks {
		switch t.Status {
		case crm.StatusNotStarted:
			c.NotStarted++
		case crm.StatusInProgress:
			c.InProgress++
		case crm.StatusCompleted:
			c.Completed++
		}
	}
	c.Total = len(tasks)
	return c
}

// ShowAll disables the per-deal task status filter.
const ShowAll = "Show All"

// FilterTasksByStatus keeps tasks whose status equals status; "" or ShowAll keeps everything.
func FilterTasksByStatus(tasks []crm.Task, status string) []crm.Task {
	if status == "" || status == ShowAll {
		return tasks
	}
	var out []crm.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Urgency is the colour tag of a task status cell.
type Urgency string

const (
	UrgencyNone       Urgency = ""
	UrgencyOverdue    Urgency = "overdue"
	UrgencyInProgress Urgency = "in_progress"
	UrgencyCompleted  Urgency = "completed"
)

// CellUrgency classifies a task cell against the reference day now.
// A task is overdue when it is not Completed and its due date is strictly before today.
func CellUrgency(status string, due *time.Time, now time.Time) Urgency {
	today := crm.DateOf(now)
	if status != crm.StatusCompleted && due != nil && crm.DateOf(*due).Before(today) {
		return UrgencyOverdue
	}
	switch status {
	case crm.StatusInProgress:
		return UrgencyInProgress
	case crm.StatusCompleted:
		return UrgencyCompleted
	}
	return UrgencyNone
}
