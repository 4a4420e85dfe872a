// Package export writes the single-sheet deal workbook and reads it back into source tables.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"dealboard/internal/crm"
	"dealboard/internal/report"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// SheetName is the only sheet of an export.
const SheetName = "Data"

// DefaultColumnWidth is the fixed display width of every export column.
const DefaultColumnWidth = 20.0

// FileName returns the export file name stamped with t.
func FileName(t time.Time) string {
	return fmt.Sprintf("deal_task_appointment_data_%s.xlsx", t.Format("20060102_150405"))
}

// layout resolves the column sets of an export, falling back to the full schema.
type layout struct {
	deal        []string
	task        []string
	appointment []string
}

func newLayout(r *report.Report) layout {
	l := layout{deal: r.DealColumns, task: r.TaskColumns}
	if len(l.deal) == 0 {
		l.deal = crm.DealColumns
	}
	if len(l.task) == 0 {
		l.task = crm.TaskColumns
	}
	appt := r.AppointmentColumns
	if len(appt) == 0 {
		appt = crm.AppointmentColumns
	}
	for _, col := range appt {
		if col != crm.ColRegarding {
			l.appointment = append(l.appointment, col)
		}
	}
	return l
}

// sheetWriter appends rows to the export sheet.
type sheetWriter struct {
	f     *excelize.File
	row   int
	width int
}

func (w *sheetWriter) write(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(SheetName, cell, &values); err != nil {
		return err
	}
	if len(values) > w.width {
		w.width = len(values)
	}
	w.row++
	return nil
}

func (w *sheetWriter) header(cols []string) error {
	values := make([]interface{}, len(cols))
	for i, c := range cols {
		values[i] = c
	}
	return w.write(values)
}

func (w *sheetWriter) skip(n int) {
	w.row += n
}

// Build lays the report out as one sheet: per deal its header and row, then its task block,
// then its appointment block, separated by blank rows.
func Build(r *report.Report, width float64) (*excelize.File, error) {
	if width <= 0 {
		width = DefaultColumnWidth
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, eris.Wrap(err, "export: rename sheet")
	}

	l := newLayout(r)
	w := &sheetWriter{f: f, row: 1}
	for _, v := range r.Deals {
		if err := writeDeal(w, l, v); err != nil {
			return nil, eris.Wrapf(err, "export: deal %s", v.Deal.Regarding)
		}
	}

	if w.width > 0 {
		last, err := excelize.ColumnNumberToName(w.width)
		if err != nil {
			return nil, eris.Wrap(err, "export: column name")
		}
		if err := f.SetColWidth(SheetName, "A", last, width); err != nil {
			return nil, eris.Wrap(err, "export: column width")
		}
	}
	return f, nil
}

func writeDeal(w *sheetWriter, l layout, v report.DealView) error {
	if err := w.header(l.deal); err != nil {
		return err
	}
	if err := w.write(dealValues(v.Deal, l.deal)); err != nil {
		return err
	}
	w.skip(1)

	if len(v.Tasks) > 0 {
		if err := w.header(l.task); err != nil {
			return err
		}
		for _, t := range v.Tasks {
			if err := w.write(taskValues(t.Task, l.task)); err != nil {
				return err
			}
		}
		w.skip(1)
	} else {
		w.skip(2)
	}

	if len(v.Appointments) > 0 {
		if err := w.header(l.appointment); err != nil {
			return err
		}
		for _, a := range v.Appointments {
			if err := w.write(appointmentValues(a, l.appointment)); err != nil {
				return err
			}
		}
		w.skip(1)
	} else {
		w.skip(2)
	}

	w.skip(1)
	return nil
}

func cell(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func dealValues(d crm.Deal, cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, col := range cols {
		switch col {
		case crm.ColDaysToIPExp:
			out[i] = d.DaysToIPExpiration
		case crm.ColHomesiteTotal:
			out[i] = d.HomesiteTotal
		default:
			out[i] = cell(d.Value(col))
		}
	}
	return out
}

func taskValues(t crm.Task, cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, col := range cols {
		out[i] = cell(t.Value(col))
	}
	return out
}

func appointmentValues(a crm.Appointment, cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, col := range cols {
		out[i] = cell(a.Value(col))
	}
	return out
}

// Write streams the export workbook to out.
func Write(out io.Writer, r *report.Report, width float64) error {
	f, err := Build(r, width)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

// WriteFile saves the export into dir under a timestamped name and returns its path.
func WriteFile(dir string, r *report.Report, width float64, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", eris.Wrapf(err, "export: create %s", dir)
	}
	f, err := Build(r, width)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, FileName(now))
	if err := f.SaveAs(path); err != nil {
		return "", eris.Wrapf(err, "export: save %s", path)
	}
	log.Info().Str("path", path).Int("deals", len(r.Deals)).Msg("Export written")
	return path, nil
}
