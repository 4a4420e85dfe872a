package crm

import (
	"testing"
	"time"
)

type mapRow map[string]string

func (m mapRow) Get(col string) (string, bool) {
	v, ok := m[col]
	return v, ok
}

func TestMapDeal(t *testing.T) {
	src := mapRow{
		ColRegarding:         " Oak Ridge ",
		ColSubMarket:         "North",
		ColDealStage:         "Due Diligence",
		ColGFSubmittal:       "05/01/2024",
		ColDaysToIPExp:       "NaN",
		ColHomesiteTotal:     "120.0",
		ColContractExecution: "someday",
		ColProjectedClosing:  "",
	}

	d, warnings := MapDeal(src, 7)
	if d.Regarding != "Oak Ridge" {
		t.Errorf("Regarding = %q, want trimmed", d.Regarding)
	}
	if d.Row != 7 {
		t.Errorf("Row = %d, want 7", d.Row)
	}
	if d.DaysToIPExpiration != 0 {
		t.Errorf("DaysToIPExpiration = %d, want 0 for NaN", d.DaysToIPExpiration)
	}
	if d.HomesiteTotal != 120 {
		t.Errorf("HomesiteTotal = %d, want 120", d.HomesiteTotal)
	}
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if d.GFSubmittal == nil || !d.GFSubmittal.Equal(want) {
		t.Errorf("GFSubmittal = %v, want %v", d.GFSubmittal, want)
	}
	if d.ContractExecution != nil || d.ProjectedClosing != nil || d.FinalApproval != nil {
		t.Errorf("expected absent dates to be nil")
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %+v", len(warnings), warnings)
	}
	if w := warnings[0]; w.Column != ColContractExecution || w.Row != 7 || w.Relation != "deals" {
		t.Errorf("unexpected warning %+v", w)
	}
}

func TestMapDeal_CountOutOfRange(t *testing.T) {
	d, warnings := MapDeal(mapRow{ColRegarding: "Oak Ridge", ColHomesiteTotal: "1e30"}, 0)
	if d.HomesiteTotal != 0 {
		t.Errorf("HomesiteTotal = %d, want 0", d.HomesiteTotal)
	}
	if len(warnings) != 1 || warnings[0].Column != ColHomesiteTotal || warnings[0].Value != "1e30" {
		t.Errorf("unexpected warnings %+v", warnings)
	}
}

func TestTask_IsBlank(t *testing.T) {
	task, _ := MapTask(mapRow{ColRegarding: "Oak Ridge", ColSubject: ""}, 1)
	if !task.IsBlank() {
		t.Errorf("task with only an identifier should be blank")
	}
	task, _ = MapTask(mapRow{ColRegarding: "Oak Ridge", ColStatusReason: StatusInProgress}, 1)
	if task.IsBlank() {
		t.Errorf("task with a status should not be blank")
	}
}

func TestMapAppointment_Extras(t *testing.T) {
	src := mapRow{
		ColRegarding: "Oak Ridge",
		ColSubject:   "Site walk",
		ColStartTime: "2024-06-03 09:00",
		"Location":   "Field office",
	}
	a, warnings := MapAppointment(src, 2, []string{"Location"})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %+v", warnings)
	}
	if got := a.Value("Location"); got != "Field office" {
		t.Errorf("Value(Location) = %q", got)
	}
	if got := a.Value(ColStartTime); got != "06/03/2024" {
		t.Errorf("Value(Start Time) = %q, want 06/03/2024", got)
	}
}

func TestRelations_Lookups(t *testing.T) {
	rel := NewRelations([]Deal{{Regarding: "A", Row: 0}, {Regarding: "B", Row: 1}})
	rel.Tasks = []Task{{Regarding: "B", Subject: "one"}, {Regarding: "A", Subject: "two"}, {Regarding: "B", Subject: "three"}}

	if _, ok := rel.Deal("C"); ok {
		t.Errorf("Deal(C) should not exist")
	}
	d, ok := rel.Deal("B")
	if !ok || d.Row != 1 {
		t.Errorf("Deal(B) = %+v, %v", d, ok)
	}
	tasks := rel.TasksFor("B")
	if len(tasks) != 2 || tasks[0].Subject != "one" || tasks[1].Subject != "three" {
		t.Errorf("TasksFor(B) = %+v, want relation order", tasks)
	}
}
