package crm

// Relations is the immutable result of one extraction pass.
// The *Columns slices list, in display order, which schema columns were present in the source.
type Relations struct {
	// RunID identifies the load pass that produced the relations.
	RunID string

	Deals        []Deal
	Tasks        []Task
	Appointments []Appointment

	// Unlinked holds appointments whose identifier matches no deal.
	Unlinked []Appointment

	DealColumns        []string
	TaskColumns        []string
	AppointmentColumns []string

	Warnings []CoercionWarning

	byID map[string]int
}

// NewRelations indexes deals by identifier. Deals must already be unique by Regarding.
func NewRelations(deals []Deal) *Relations {
	r := &Relations{Deals: deals, byID: make(map[string]int, len(deals))}
	for i, d := range deals {
		r.byID[d.Regarding] = i
	}
	return r
}

// Deal looks up a deal by identifier.
func (r *Relations) Deal(regarding string) (Deal, bool) {
	i, ok := r.byID[regarding]
	if !ok {
		return Deal{}, false
	}
	return r.Deals[i], true
}

// HasDeal reports whether a deal with the identifier exists.
func (r *Relations) HasDeal(regarding string) bool {
	_, ok := r.byID[regarding]
	return ok
}

// TasksFor returns the deal's tasks in relation order.
func (r *Relations) TasksFor(regarding string) []Task {
	var out []Task
	for _, t := range r.Tasks {
		if t.Regarding == regarding {
			out = append(out, t)
		}
	}
	return out
}

// AppointmentsFor returns the deal's appointments in relation order.
func (r *Relations) AppointmentsFor(regarding string) []Appointment {
	var out []Appointment
	for _, a := range r.Appointments {
		if a.Regarding == regarding {
			out = append(out, a)
		}
	}
	return out
}
