package ingest

import (
	"strings"

	"dealboard/internal/crm"
	"dealboard/internal/workbook"

	"github.com/rs/zerolog/log"
)

// Extract projects the classified tables into Deal, Task and Appointment relations.
//
// Deals are unique by identifier (first occurrence wins) and indexed densely in source order.
// Missing schema columns are omitted; only a missing identifier column on the combined
// table is an error.
func Extract(c Classified) (*crm.Relations, error) {
	combined := c.Combined
	if !combined.Has(crm.ColRegarding) {
		return nil, &SchemaError{Table: combined.Name, Column: crm.ColRegarding}
	}

	var deals []crm.Deal
	var tasks []crm.Task
	var warnings []crm.CoercionWarning
	seenDeal := make(map[string]int)
	seenTask := make(map[string]bool)

	for i := range combined.Rows {
		row := combined.Row(i)

		d, dw := crm.MapDeal(row, len(deals))
		if d.Regarding == "" {
			continue
		}
		if first, ok := seenDeal[d.Regarding]; ok {
			if !sameDeal(deals[first], d) {
				log.Debug().Str("regarding", d.Regarding).Int("row", i).Msg("Conflicting deal row ignored")
			}
		} else {
			seenDeal[d.Regarding] = len(deals)
			deals = append(deals, d)
			warnings = append(warnings, dw...)
		}

		t, tw := crm.MapTask(row, i)
		if t.IsBlank() {
			continue
		}
		key := taskKey(t)
		if seenTask[key] {
			continue
		}
		seenTask[key] = true
		tasks = append(tasks, t)
		warnings = append(warnings, tw...)
	}

	rel := crm.NewRelations(deals)
	rel.Tasks = tasks
	rel.DealColumns = presentColumns(combined, crm.DealColumns)
	rel.TaskColumns = presentColumns(combined, crm.TaskColumns)

	if c.Appointments != nil {
		aw := extractAppointments(rel, *c.Appointments)
		warnings = append(warnings, aw...)
	}

	rel.Warnings = warnings
	for _, w := range warnings {
		log.Debug().Str("relation", w.Relation).Str("column", w.Column).Int("row", w.Row).Str("value", w.Value).Msg("Value could not be coerced")
	}

	return rel, nil
}

func extractAppointments(rel *crm.Relations, t workbook.Table) []crm.CoercionWarning {
	if !t.Has(crm.ColRegarding) {
		log.Warn().Str("table", t.Name).Msg("Appointments table has no Regarding column; appointments skipped")
	}

	typed := make(map[string]bool, len(crm.AppointmentColumns))
	for _, col := range crm.AppointmentColumns {
		typed[col] = true
	}
	system := make(map[string]bool, len(crm.AppointmentSystemColumns))
	for _, col := range crm.AppointmentSystemColumns {
		system[col] = true
	}

	var columns, extras []string
	seen := make(map[string]bool)
	for _, h := range t.Headers {
		if h == "" || system[h] || seen[h] {
			continue
		}
		seen[h] = true
		columns = append(columns, h)
		if !typed[h] {
			extras = append(extras, h)
		}
	}
	rel.AppointmentColumns = columns

	var warnings []crm.CoercionWarning
	for i := range t.Rows {
		a, aw := crm.MapAppointment(t.Row(i), i, extras)
		if a.Regarding == "" {
			continue
		}
		a.Description = StripMarkup(a.Description)
		warnings = append(warnings, aw...)

		if rel.HasDeal(a.Regarding) {
			rel.Appointments = append(rel.Appointments, a)
		} else {
			rel.Unlinked = append(rel.Unlinked, a)
		}
	}
	if len(rel.Unlinked) > 0 {
		log.Info().Int("count", len(rel.Unlinked)).Msg("Appointments reference unknown deals")
	}
	return warnings
}

// presentColumns returns the schema columns found in t, in schema order.
func presentColumns(t workbook.Table, schema []string) []string {
	var out []string
	for _, col := range schema {
		if t.Has(col) {
			out = append(out, col)
		}
	}
	return out
}

func sameDeal(a, b crm.Deal) bool {
	for _, col := range crm.DealColumns {
		if a.Value(col) != b.Value(col) {
			return false
		}
	}
	return true
}

func taskKey(t crm.Task) string {
	var b strings.Builder
	b.WriteString(t.Regarding)
	for _, col := range crm.TaskColumns {
		b.WriteByte(0x1f)
		b.WriteString(t.Value(col))
	}
	return b.String()
}
