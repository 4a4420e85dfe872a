package visuals

import (
	"fmt"
	"math"
	"strings"
	"time"

	"dealboard/internal/stats"
	"dealboard/internal/timeline"
)

const ganttDateLayout = "2006-01-02"

var labelReplacer = strings.NewReplacer(":", " -", "#", "No.", ";", ",", "\n", " ", "\"", "'")

// safeLabel strips characters that terminate a Mermaid task or slice name.
func safeLabel(s string) string {
	return strings.TrimSpace(labelReplacer.Replace(s))
}

// ganttTags maps an interval colour onto the closest Mermaid task state.
func ganttTags(c timeline.Color) string {
	switch c {
	case timeline.ColorGray:
		return "done, "
	case timeline.ColorRed, timeline.ColorMagenta:
		return "crit, "
	case timeline.ColorOrange:
		return "crit, active, "
	case timeline.ColorYellow, timeline.ColorGreen:
		return "active, "
	}
	return ""
}

// GenerateGanttChart creates a Mermaid gantt chart for one deal's timeline.
func GenerateGanttChart(tl timeline.Timeline) string {
	if tl.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("gantt\n")
	sb.WriteString(fmt.Sprintf("    title Gantt Chart for %s\n", safeLabel(tl.Deal)))
	sb.WriteString("    dateFormat YYYY-MM-DD\n")
	sb.WriteString("    axisFormat %m/%d/%Y\n")
	sb.WriteString("    todayMarker off\n")

	writeSection := func(name, prefix string, intervals []timeline.Interval) {
		if len(intervals) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("    section %s\n", name))
		for i, iv := range intervals {
			end := iv.End
			if end.Before(iv.Start) {
				end = iv.Start
			}
			sb.WriteString(fmt.Sprintf("    %s :%s%s%d, %s, %s\n",
				safeLabel(iv.Label), ganttTags(iv.Color), prefix, i,
				iv.Start.Format(ganttDateLayout), end.Format(ganttDateLayout)))
		}
	}
	writeSection("Milestones", "m", tl.Milestones())
	writeSection("Tasks", "t", tl.Tasks())

	sb.WriteString("    section Markers\n")
	sb.WriteString(fmt.Sprintf("    Today :milestone, k0, %s, 0d\n", tl.Today.Format(ganttDateLayout)))
	for i, m := range tl.Markers {
		sb.WriteString(fmt.Sprintf("    %s :milestone, k%d, %s, 0d\n", safeLabel(m.Label), i+1, m.Date.Format(ganttDateLayout)))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateStatusPie creates a Mermaid pie chart of a deal's task statuses.
func GenerateStatusPie(deal string, counts stats.StatusCounts) string {
	if counts.Total == 0 {
		return ""
	}
	other := counts.Total - counts.NotStarted - counts.InProgress - counts.Completed

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("pie title Task Status for %s\n", safeLabel(deal)))
	sb.WriteString(fmt.Sprintf("    \"Not Started\" : %d\n", counts.NotStarted))
	sb.WriteString(fmt.Sprintf("    \"In Progress\" : %d\n", counts.InProgress))
	sb.WriteString(fmt.Sprintf("    \"Completed\" : %d\n", counts.Completed))
	if other > 0 {
		sb.WriteString(fmt.Sprintf("    \"Other\" : %d\n", other))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateCohortChart creates a Mermaid bar chart of deal counts per cohort.
func GenerateCohortChart(summaries []stats.CohortSummary) string {
	if len(summaries) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for _, s := range summaries {
		labels = append(labels, fmt.Sprintf("\"%s\"", safeLabel(s.Label)))
		values = append(values, fmt.Sprintf("%d", s.Deals))
		if s.Deals > maxVal {
			maxVal = s.Deals
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Deals per Cohort\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Deals\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// FormatWindow renders a chart window for captions.
func FormatWindow(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("01/02/2006"), end.Format("01/02/2006"))
}
