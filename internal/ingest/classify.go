package ingest

import (
	"dealboard/internal/crm"
	"dealboard/internal/workbook"
)

// Classified holds the uploads sorted into their roles. Appointments is nil in single-file mode.
type Classified struct {
	Combined     workbook.Table
	Appointments *workbook.Table
}

// IsAppointments reports whether a table with normalized headers carries the appointment marker columns.
func IsAppointments(t workbook.Table) bool {
	return t.Has(crm.AppointmentMarkers...)
}

// Classify decides which upload is the appointments table. Headers must already be normalized.
//
// One table is always the combined Deals/Tasks table. With two tables exactly one must carry
// the appointment markers; the result does not depend on argument order.
func Classify(tables ...workbook.Table) (Classified, error) {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}

	switch len(tables) {
	case 1:
		return Classified{Combined: tables[0]}, nil
	case 2:
	default:
		return Classified{}, &ClassificationError{
			Tables: names,
			Reason: "expected one or two tables",
		}
	}

	var matched []string
	appt := -1
	for i, t := range tables {
		if IsAppointments(t) {
			matched = append(matched, t.Name)
			appt = i
		}
	}

	switch len(matched) {
	case 0:
		return Classified{}, &ClassificationError{
			Tables: names,
			Reason: "neither table has both Subject and Start Time columns",
		}
	case 2:
		return Classified{}, &ClassificationError{
			Tables:  names,
			Matched: matched,
			Reason:  "both tables have Subject and Start Time columns",
		}
	}

	appointments := tables[appt]
	return Classified{
		Combined:     tables[1-appt],
		Appointments: &appointments,
	}, nil
}
