package crm

import (
	"strconv"
	"strings"
	"time"
)

// Getter exposes a source row by column name. The bool reports whether the column exists.
type Getter interface {
	Get(col string) (string, bool)
}

// rowMapper collects coercion warnings while reading one row.
type rowMapper struct {
	src      Getter
	relation string
	row      int
	warnings []CoercionWarning
}

func (m *rowMapper) str(col string) string {
	v, _ := m.src.Get(col)
	return strings.TrimSpace(v)
}

func (m *rowMapper) date(col string) *time.Time {
	raw, ok := m.src.Get(col)
	if !ok {
		return nil
	}
	t, ok := ParseDate(raw)
	if !ok {
		m.warn(col, raw)
	}
	return t
}

func (m *rowMapper) count(col string) int {
	raw, ok := m.src.Get(col)
	if !ok {
		return 0
	}
	n, ok := ParseCount(raw)
	if !ok {
		m.warn(col, raw)
	}
	return n
}

func (m *rowMapper) warn(col, raw string) {
	m.warnings = append(m.warnings, CoercionWarning{Relation: m.relation, Column: col, Row: m.row, Value: raw})
}

// MapDeal reads the deal projection of a source row. Absent columns leave zero values.
func MapDeal(src Getter, row int) (Deal, []CoercionWarning) {
	m := &rowMapper{src: src, relation: "deals", row: row}
	homesites := m.count(ColHomesiteTotal)
	if homesites < 0 {
		homesites = 0
	}
	d := Deal{
		Regarding:          m.str(ColRegarding),
		SubMarket:          m.str(ColSubMarket),
		Stage:              m.str(ColDealStage),
		GFSubmittal:        m.date(ColGFSubmittal),
		GFMeeting:          m.date(ColGFMeeting),
		IPExpiration:       m.date(ColIPExpiration),
		DaysToIPExpiration: m.count(ColDaysToIPExp),
		ProjectedClosing:   m.date(ColProjectedClosing),
		HomesiteTotal:      homesites,
		HomesiteSize:       m.str(ColHomesiteSize),
		AcquisitionType:    m.str(ColAcquisitionType),
		PrimarySeller:      m.str(ColPrimarySeller),
		ProductType:        m.str(ColProductType),
		FinalApproval:      m.date(ColFinalApproval),
		ContractExecution:  m.date(ColContractExecution),
		Row:                row,
	}
	return d, m.warnings
}

// MapTask reads the task projection of a source row.
func MapTask(src Getter, row int) (Task, []CoercionWarning) {
	m := &rowMapper{src: src, relation: "tasks", row: row}
	t := Task{
		Regarding:      m.str(ColRegarding),
		Category:       m.str(ColTaskCategory),
		Owner:          m.str(ColOwner),
		Subject:        m.str(ColSubject),
		StartDate:      m.date(ColStartDate),
		DueDate:        m.date(ColDueDate),
		VendorAssigned: m.str(ColVendorAssigned),
		Priority:       m.str(ColPriority),
		Comment:        m.str(ColComment),
		Status:         m.str(ColStatusReason),
		ActualEnd:      m.date(ColActualEnd),
		ModifiedOn:     m.date(ColModifiedOn),
	}
	return t, m.warnings
}

// MapAppointment reads an appointment row. extras lists the additional columns to carry verbatim.
func MapAppointment(src Getter, row int, extras []string) (Appointment, []CoercionWarning) {
	m := &rowMapper{src: src, relation: "appointments", row: row}
	a := Appointment{
		Regarding:   m.str(ColRegarding),
		Subject:     m.str(ColSubject),
		Owner:       m.str(ColOwner),
		Status:      m.str(ColStatus),
		StartTime:   m.date(ColStartTime),
		EndTime:     m.date(ColEndTime),
		Category:    m.str(ColCategory),
		Description: m.str(ColDescription),
	}
	if len(extras) > 0 {
		a.Extra = make(map[string]string, len(extras))
		for _, col := range extras {
			a.Extra[col] = m.str(col)
		}
	}
	return a, m.warnings
}

// Value renders a deal field for display or export.
func (d Deal) Value(col string) string {
	switch col {
	case ColRegarding:
		return d.Regarding
	case ColSubMarket:
		return d.SubMarket
	case ColDealStage:
		return d.Stage
	case ColGFSubmittal:
		return FormatDate(d.GFSubmittal)
	case ColGFMeeting:
		return FormatDate(d.GFMeeting)
	case ColIPExpiration:
		return FormatDate(d.IPExpiration)
	case ColDaysToIPExp:
		return strconv.Itoa(d.DaysToIPExpiration)
	case ColProjectedClosing:
		return FormatDate(d.ProjectedClosing)
	case ColHomesiteTotal:
		return strconv.Itoa(d.HomesiteTotal)
	case ColHomesiteSize:
		return d.HomesiteSize
	case ColAcquisitionType:
		return d.AcquisitionType
	case ColPrimarySeller:
		return d.PrimarySeller
	case ColProductType:
		return d.ProductType
	case ColFinalApproval:
		return FormatDate(d.FinalApproval)
	case ColContractExecution:
		return FormatDate(d.ContractExecution)
	}
	return ""
}

// Date returns the deal's date field for col, or nil when col is not a date column.
func (d Deal) Date(col string) *time.Time {
	switch col {
	case ColGFSubmittal:
		return d.GFSubmittal
	case ColGFMeeting:
		return d.GFMeeting
	case ColIPExpiration:
		return d.IPExpiration
	case ColProjectedClosing:
		return d.ProjectedClosing
	case ColFinalApproval:
		return d.FinalApproval
	case ColContractExecution:
		return d.ContractExecution
	}
	return nil
}

// Value renders a task field for display or export.
func (t Task) Value(col string) string {
	switch col {
	case ColRegarding:
		return t.Regarding
	case ColTaskCategory:
		return t.Category
	case ColOwner:
		return t.Owner
	case ColSubject:
		return t.Subject
	case ColStartDate:
		return FormatDate(t.StartDate)
	case ColDueDate:
		return FormatDate(t.DueDate)
	case ColVendorAssigned:
		return t.VendorAssigned
	case ColPriority:
		return t.Priority
	case ColComment:
		return t.Comment
	case ColStatusReason:
		return t.Status
	case ColActualEnd:
		return FormatDate(t.ActualEnd)
	case ColModifiedOn:
		return FormatDate(t.ModifiedOn)
	}
	return ""
}

// IsBlank reports whether every task attribute other than the identifier is empty.
// Such rows come from deals that have no tasks at all.
func (t Task) IsBlank() bool {
	for _, col := range TaskColumns {
		if t.Value(col) != "" {
			return false
		}
	}
	return true
}

// Value renders an appointment field (typed or extra) for display or export.
func (a Appointment) Value(col string) string {
	switch col {
	case ColRegarding:
		return a.Regarding
	case ColSubject:
		return a.Subject
	case ColOwner:
		return a.Owner
	case ColStatus:
		return a.Status
	case ColStartTime:
		return FormatDate(a.StartTime)
	case ColEndTime:
		return FormatDate(a.EndTime)
	case ColCategory:
		return a.Category
	case ColDescription:
		return a.Description
	}
	return a.Extra[col]
}
