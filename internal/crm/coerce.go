package crm

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// DisplayLayout is the calendar-date layout used for display and export.
const DisplayLayout = "01/02/2006"

// Serial day numbers outside this window are not treated as spreadsheet dates.
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465 // 9999-12-31
)

// ParseDate coerces a cell to a calendar date at UTC midnight.
// Blank cells return (nil, true); unparseable cells return (nil, false).
func ParseDate(raw string) (*time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || isNullToken(s) {
		return nil, true
	}

	// Raw cell values from xlsx come through as day serials.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < minExcelSerial || f > maxExcelSerial || len(s) == 4 {
			return nil, false
		}
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return nil, false
		}
		return dateOf(t), true
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil, false
	}
	return dateOf(t), true
}

// ParseCount coerces a cell to a rounded integer. Blank, NaN and infinite values become 0;
// the second result is false when a non-blank cell is not a number or does not fit in an int.
func ParseCount(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || isNullToken(s) {
		return 0, true
	}
	s = strings.ReplaceAll(s, ",", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true
	}
	r := math.Round(f)
	if r >= float64(math.MaxInt) || r < float64(math.MinInt) {
		return 0, false
	}
	return int(r), true
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateOf(t time.Time) *time.Time {
	d := DateOf(t)
	return &d
}

// FormatDate renders a date for display, or "" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DisplayLayout)
}

func isNullToken(s string) bool {
	switch strings.ToLower(s) {
	case "nan", "nat", "null", "none", "n/a", "#n/a":
		return true
	}
	return false
}
