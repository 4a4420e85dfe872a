package export

import (
	"html"
	"io"
	"slices"
	"strings"

	"dealboard/internal/crm"
	"dealboard/internal/workbook"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

type blockKind int

const (
	blockNone blockKind = iota
	blockDeal
	blockTask
	blockAppointment
)

func kindOf(header []string) blockKind {
	switch {
	case slices.Contains(header, crm.ColRegarding):
		return blockDeal
	case slices.Contains(header, crm.ColStartTime):
		return blockAppointment
	}
	return blockTask
}

// tableBuilder accumulates rows under a growing union of headers.
type tableBuilder struct {
	name    string
	headers []string
	rows    [][]string
}

func (b *tableBuilder) index(col string) int {
	if i := slices.Index(b.headers, col); i >= 0 {
		return i
	}
	b.headers = append(b.headers, col)
	return len(b.headers) - 1
}

func (b *tableBuilder) add(values map[string]string, order []string) {
	for _, col := range order {
		b.index(col)
	}
	for col := range values {
		b.index(col)
	}
	row := make([]string, len(b.headers))
	for col, v := range values {
		row[b.index(col)] = v
	}
	b.rows = append(b.rows, row)
}

func (b *tableBuilder) table() workbook.Table {
	t := workbook.Table{Name: b.name, Headers: b.headers}
	for _, r := range b.rows {
		padded := make([]string, len(b.headers))
		copy(padded, r)
		t.Rows = append(t.Rows, padded)
	}
	return t
}

// pendingDeal is a deal whose tasks are still being read.
type pendingDeal struct {
	header []string
	values map[string]string
	tasks  int
}

// ReadFile parses an export back into source tables.
func ReadFile(path string) ([]workbook.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: open %s", path)
	}
	defer f.Close()
	return readSheet(f)
}

// Read parses an export stream back into source tables.
func Read(r io.Reader) ([]workbook.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "export: open workbook")
	}
	defer f.Close()
	return readSheet(f)
}

// readSheet rebuilds the combined Deals+Tasks table (one row per task, or one deal-only row)
// and, when any appointment block exists, the appointments table with its identifier column.
func readSheet(f *excelize.File) ([]workbook.Table, error) {
	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, eris.New("export: workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, eris.Wrapf(err, "export: read sheet %s", sheet)
	}

	combined := &tableBuilder{name: "export-deals-tasks"}
	appts := &tableBuilder{name: "export-appointments"}

	var deal *pendingDeal
	flush := func() {
		if deal != nil && deal.tasks == 0 {
			combined.add(deal.values, deal.header)
		}
	}

	kind := blockNone
	var header []string
	for _, raw := range rows {
		if isBlank(raw) {
			kind = blockNone
			continue
		}
		if kind == blockNone {
			header = trimAll(raw)
			kind = kindOf(header)
			continue
		}

		values := rowValues(header, raw)
		switch kind {
		case blockDeal:
			flush()
			deal = &pendingDeal{header: header, values: values}
		case blockTask:
			if deal == nil {
				return nil, eris.New("export: task block before any deal")
			}
			merged := make(map[string]string, len(deal.values)+len(values))
			for k, v := range deal.values {
				merged[k] = v
			}
			for k, v := range values {
				merged[k] = v
			}
			combined.add(merged, append(slices.Clone(deal.header), header...))
			deal.tasks++
		case blockAppointment:
			if deal == nil {
				return nil, eris.New("export: appointment block before any deal")
			}
			values[crm.ColRegarding] = deal.values[crm.ColRegarding]
			// Descriptions were exported as plain text; escape them so re-ingest keeps literal markup.
			if d, ok := values[crm.ColDescription]; ok {
				values[crm.ColDescription] = html.EscapeString(d)
			}
			appts.add(values, append([]string{crm.ColRegarding}, header...))
		}
	}
	flush()

	if len(combined.rows) == 0 {
		return nil, eris.New("export: no deals found")
	}
	tables := []workbook.Table{combined.table()}
	if len(appts.rows) > 0 {
		tables = append(tables, appts.table())
	}
	return tables, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func rowValues(header, row []string) map[string]string {
	values := make(map[string]string, len(header))
	for i, col := range header {
		if col == "" {
			continue
		}
		if i < len(row) {
			values[col] = row[i]
		} else {
			values[col] = ""
		}
	}
	return values
}
