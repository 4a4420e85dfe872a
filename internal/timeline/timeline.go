// Package timeline turns a deal and its tasks into labelled Gantt intervals.
package timeline

import (
	"time"

	"dealboard/internal/crm"
)

// Color tags an interval for rendering.
type Color string

const (
	ColorTeal    Color = "teal"
	ColorGray    Color = "gray"
	ColorMagenta Color = "magenta"
	ColorPurple  Color = "purple"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
)

// Kind separates deal milestones from task bars.
type Kind string

const (
	KindMilestone Kind = "milestone"
	KindTask      Kind = "task"
)

const (
	LabelContract    = "Contract Dates"
	LabelGreenFolder = "Green Folder Dates"

	StatusContract    = "Contract"
	StatusGreenFolder = "Green Folder"
)

// Due-date horizons for in-progress tasks, in days from today.
const (
	dueSoonDays  = 5
	dueLaterDays = 15
	windowPad    = 30
)

// Interval is one bar on the chart. Start and End are calendar days at UTC midnight.
type Interval struct {
	Label  string    `json:"label"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Color  Color     `json:"color"`
	Kind   Kind      `json:"kind"`
}

// Marker is a single dated line drawn over the chart.
type Marker struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
}

// Timeline is the chart model of one deal.
type Timeline struct {
	Deal        string     `json:"deal"`
	Today       time.Time  `json:"today"`
	Intervals   []Interval `json:"intervals"`
	Markers     []Marker   `json:"markers,omitempty"`
	WindowStart time.Time  `json:"window_start"`
	WindowEnd   time.Time  `json:"window_end"`
}

// Build assembles the deal's timeline against the reference day now.
// Milestones come first, then one interval per task in the given order.
// Missing optional dates fall back to defaults and never fail the build.
func Build(deal crm.Deal, tasks []crm.Task, now time.Time) Timeline {
	today := crm.DateOf(now)
	tl := Timeline{Deal: deal.Regarding, Today: today, Intervals: []Interval{}}

	if deal.ContractExecution != nil && deal.ProjectedClosing != nil {
		tl.Intervals = append(tl.Intervals, Interval{
			Label:  LabelContract,
			Start:  *deal.ContractExecution,
			End:    *deal.ProjectedClosing,
			Status: StatusContract,
			Color:  ColorTeal,
			Kind:   KindMilestone,
		})
	}

	if deal.GFSubmittal != nil && deal.GFMeeting != nil {
		tl.Intervals = append(tl.Intervals, Interval{
			Label:  LabelGreenFolder,
			Start:  *deal.GFSubmittal,
			End:    *deal.GFMeeting,
			Status: StatusGreenFolder,
			Color:  greenFolderColor(deal, today),
			Kind:   KindMilestone,
		})
	}

	for _, t := range tasks {
		tl.Intervals = append(tl.Intervals, taskInterval(t, today))
	}

	tl.Markers = markers(deal)
	tl.WindowStart, tl.WindowEnd = window(tl.Intervals, today)
	return tl
}

func greenFolderColor(deal crm.Deal, today time.Time) Color {
	switch {
	case deal.FinalApproval != nil:
		return ColorGray
	case today.After(*deal.GFMeeting):
		return ColorMagenta
	default:
		return ColorPurple
	}
}

func taskInterval(t crm.Task, today time.Time) Interval {
	start := today
	if t.StartDate != nil {
		start = *t.StartDate
	}
	finish := start.AddDate(0, 0, 1)
	if t.DueDate != nil {
		finish = *t.DueDate
	}

	iv := Interval{
		Label:  taskLabel(t),
		Start:  start,
		End:    finish,
		Status: t.Status,
		Kind:   KindTask,
	}

	switch t.Status {
	case crm.StatusCompleted:
		if t.ActualEnd != nil {
			iv.End = *t.ActualEnd
		}
		iv.Color = ColorGray
	case crm.StatusInProgress:
		iv.Color = progressColor(finish, today)
	default:
		iv.Color = ColorBlue
	}
	return iv
}

// progressColor grades an in-progress task by how close its finish is to today.
func progressColor(finish, today time.Time) Color {
	soon := today.AddDate(0, 0, dueSoonDays)
	later := today.AddDate(0, 0, dueLaterDays)
	switch {
	case finish.Before(today):
		return ColorRed
	case !finish.After(soon):
		return ColorOrange
	case !finish.After(later):
		return ColorYellow
	default:
		return ColorGreen
	}
}

func taskLabel(t crm.Task) string {
	switch {
	case t.Subject != "":
		return t.Subject
	case t.Category != "":
		return t.Category
	}
	return "Untitled task"
}

func markers(deal crm.Deal) []Marker {
	var out []Marker
	if deal.ContractExecution != nil {
		out = append(out, Marker{Label: crm.ColContractExecution, Date: *deal.ContractExecution})
	}
	if deal.IPExpiration != nil {
		out = append(out, Marker{Label: crm.ColIPExpiration, Date: *deal.IPExpiration})
	}
	if deal.GFSubmittal != nil {
		out = append(out, Marker{Label: crm.ColGFSubmittal, Date: *deal.GFSubmittal})
	}
	return out
}

// window spans from a month before today to a month after the latest finish.
func window(intervals []Interval, today time.Time) (time.Time, time.Time) {
	last := today
	for _, iv := range intervals {
		if iv.End.After(last) {
			last = iv.End
		}
	}
	return today.AddDate(0, 0, -windowPad), last.AddDate(0, 0, windowPad)
}

// Milestones returns the deal-level intervals.
func (t Timeline) Milestones() []Interval {
	var out []Interval
	for _, iv := range t.Intervals {
		if iv.Kind == KindMilestone {
			out = append(out, iv)
		}
	}
	return out
}

// Tasks returns the task intervals in task order.
func (t Timeline) Tasks() []Interval {
	var out []Interval
	for _, iv := range t.Intervals {
		if iv.Kind == KindTask {
			out = append(out, iv)
		}
	}
	return out
}

// IsEmpty reports whether there is nothing to chart.
func (t Timeline) IsEmpty() bool {
	return len(t.Intervals) == 0
}
