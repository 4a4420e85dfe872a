package export

import (
	"bytes"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"
	"time"

	"dealboard/internal/crm"
	"dealboard/internal/ingest"
	"dealboard/internal/report"
	"dealboard/internal/workbook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var refNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func sourceTables() []workbook.Table {
	combined := workbook.Table{
		Name: "deals_tasks.xlsx",
		Headers: []string{
			"Regarding", "Sub-Market", "Calculated Deal Stage", "GF Submittal Date", "Days to IP Expiration",
			"Deal Homesite Total", "Subject", "Owner", "Status Reason", "Due Date", "Modified On",
		},
		Rows: [][]string{
			{"Oak Ridge", "North", "Due Diligence", "05/01/2024", "12", "120", "Survey", "Dana", "In Progress", "06/03/2024", "05/30/2024"},
			{"Oak Ridge", "North", "Due Diligence", "05/01/2024", "12", "120", "Title", "Lee", "Completed", "05/10/2024", ""},
			{"Pine Flats", "South", "Screening", "", "NaN", "", "", "", "", "", ""},
			{"Cedar Bend", "East", "Closing", "", "3", "40", "Plat", "", "Not Started", "", ""},
		},
	}
	appts := workbook.Table{
		Name:    "appointments.xlsx",
		Headers: []string{"Appointment (Do Not Modify)", "Subject", "Regarding", "Status", "Start Time", "End Time", "Description", "Location"},
		Rows: [][]string{
			{"g1", "Site walk", "Oak Ridge", "Open", "2024-06-03 09:00", "2024-06-03 10:00", "<p>Meet at <b>gate</b></p>", "Field office"},
			{"g2", "Call", "Cedar Bend", "Completed", "2024-05-20", "", "<p>Bring &lt;b&gt;plat&lt;/b&gt; copies</p>", ""},
			{"g3", "Kickoff", "Pine Flats", "Open", "2024-06-10", "", "agenda", "HQ"},
		},
	}
	return []workbook.Table{combined, appts}
}

func keysOf[T any](items []T, key func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = key(it)
	}
	sort.Strings(out)
	return out
}

func dealKey(d crm.Deal) string {
	var b strings.Builder
	for _, col := range crm.DealColumns {
		b.WriteString(d.Value(col) + "|")
	}
	return b.String()
}

func taskKey(t crm.Task) string {
	var b strings.Builder
	b.WriteString(t.Regarding + "|")
	for _, col := range crm.TaskColumns {
		b.WriteString(t.Value(col) + "|")
	}
	return b.String()
}

func appointmentKey(a crm.Appointment) string {
	var b strings.Builder
	for _, col := range append(slices.Clone(crm.AppointmentColumns), "Location") {
		b.WriteString(a.Value(col) + "|")
	}
	return b.String()
}

func TestRoundTrip(t *testing.T) {
	rel, err := ingest.Run(sourceTables(), ingest.Options{})
	require.NoError(t, err)
	r, err := report.Build(rel, report.Options{Now: refNow})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, 0))

	tables, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	back, err := ingest.Run(tables, ingest.Options{})
	require.NoError(t, err)

	assert.Equal(t, keysOf(rel.Deals, dealKey), keysOf(back.Deals, dealKey))
	assert.Equal(t, keysOf(rel.Tasks, taskKey), keysOf(back.Tasks, taskKey))
	assert.Equal(t, keysOf(rel.Appointments, appointmentKey), keysOf(back.Appointments, appointmentKey))
	assert.Len(t, back.Deals, 3)
	assert.Len(t, back.Tasks, 3)
	assert.Len(t, back.Appointments, 3)

	// Escaped markup decodes to literal text once and survives the second pass unchanged.
	call := back.AppointmentsFor("Cedar Bend")
	require.Len(t, call, 1)
	assert.Equal(t, "Bring <b>plat</b> copies", call[0].Description)
}

func TestBuild_Layout(t *testing.T) {
	rel, err := ingest.Run(sourceTables(), ingest.Options{})
	require.NoError(t, err)
	r, err := report.Build(rel, report.Options{Now: refNow})
	require.NoError(t, err)

	f, err := Build(r, 25)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)

	// Oak Ridge: header, row, blank, task header, 2 tasks, blank, appt header, 1 appt, blank, blank.
	assert.Equal(t, "Regarding", rows[0][0])
	assert.Equal(t, "Oak Ridge", rows[1][0])
	assert.Empty(t, rows[2])
	assert.Equal(t, "Owner", rows[3][0])
	assert.Equal(t, "Survey", rows[4][1])
	assert.Equal(t, "06/03/2024", rows[4][2])
	assert.Empty(t, rows[6])
	assert.Equal(t, "Subject", rows[7][0])
	assert.Equal(t, "Meet at gate", rows[8][4])
	assert.Empty(t, rows[9])
	assert.Empty(t, rows[10])
	assert.Equal(t, "Regarding", rows[11][0])

	// Pine Flats has no tasks: two blank rows stand in for the task block.
	assert.Equal(t, "Pine Flats", rows[12][0])
	assert.Equal(t, "0", rows[12][4])
	assert.Empty(t, rows[13])
	assert.Empty(t, rows[14])
	assert.Empty(t, rows[15])
	assert.Equal(t, "Subject", rows[16][0])

	width, err := f.GetColWidth(SheetName, "B")
	require.NoError(t, err)
	assert.Equal(t, 25.0, width)
}

func TestWriteFile(t *testing.T) {
	rel, err := ingest.Run(sourceTables()[:1], ingest.Options{})
	require.NoError(t, err)
	r, err := report.Build(rel, report.Options{Now: refNow})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "exports")
	stamp := time.Date(2024, 6, 1, 14, 5, 9, 0, time.UTC)
	path, err := WriteFile(dir, r, 0, stamp)
	require.NoError(t, err)
	assert.Equal(t, "deal_task_appointment_data_20240601_140509.xlsx", filepath.Base(path))

	tables, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, tables, 1, "single-file mode exports no appointment blocks")
	assert.Len(t, tables[0].Rows, 4)
}

func TestRead_NoDeals(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := Read(&buf)
	assert.Error(t, err)
}
