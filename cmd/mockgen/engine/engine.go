package engine

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"dealboard/internal/crm"
	"dealboard/internal/workbook"

	"github.com/xuri/excelize/v2"
)

type GeneratorConfig struct {
	Scenario string // "clean" or "messy"
	Count    int    // number of deals
	Now      time.Time
	Seed     int64
}

var (
	subMarkets = []string{"North", "South", "East", "West", "Central"}
	stages     = []string{"LOI", "Screening", "Due Diligence", "Approval", "Closing"}
	sellers    = []string{"Oakmont Land Co", "Ridgeview Partners", "Cedar Holdings", "Bluestem LLC"}
	products   = []string{"Single Family", "Townhome", "Active Adult"}
	categories = []string{"Engineering", "Legal", "Entitlements", "Finance"}
	owners     = []string{"Dana Ortiz", "Lee Park", "Sam Patel", "Jo Kim"}
	subjects   = []string{"Boundary survey", "Title commitment", "Phase I ESA", "Zoning letter", "Geotech report", "Budget review"}
	statuses   = []string{crm.StatusNotStarted, crm.StatusInProgress, crm.StatusCompleted}
)

// Generate builds a combined Deals+Tasks table and an Appointments table.
// The messy scenario reproduces the quirks of real CRM exports: parenthesised headers,
// system columns, HTML descriptions, NaN counts, bad dates, duplicate rows and orphaned appointments.
func Generate(cfg GeneratorConfig) (workbook.Table, workbook.Table) {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Count <= 0 {
		cfg.Count = 20
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	messy := cfg.Scenario == "messy"
	today := crm.DateOf(cfg.Now)

	date := func(offsetDays int) string {
		return today.AddDate(0, 0, offsetDays).Format(crm.DisplayLayout)
	}
	choose := func(xs []string) string { return pick(rng, xs) }

	dealHeaders := append([]string(nil), crm.DealColumns...)
	taskHeaders := append([]string(nil), crm.TaskColumns...)
	if messy {
		dealHeaders[0] = crm.ColRegarding + " (Deal)"
		taskHeaders[len(taskHeaders)-1] = crm.ColModifiedOn + " (Task)"
	}
	combined := workbook.Table{Name: "deals_tasks.xlsx", Headers: append(dealHeaders, taskHeaders...)}

	apptHeaders := []string{"Appointment (Do Not Modify)", "Row Checksum (Do Not Modify)", "Modified On (Do Not Modify)"}
	apptHeaders = append(apptHeaders, crm.AppointmentColumns...)
	appts := workbook.Table{Name: "appointments.xlsx", Headers: append(apptHeaders, "Location")}

	for i := 0; i < cfg.Count; i++ {
		name := fmt.Sprintf("%s %s %d", choose(subMarkets), choose([]string{"Ridge", "Flats", "Bend", "Crossing", "Meadows"}), i+1)

		deal := map[string]string{
			crm.ColRegarding:       name,
			crm.ColSubMarket:       choose(subMarkets),
			crm.ColDealStage:       choose(stages),
			crm.ColDaysToIPExp:     strconv.Itoa(rng.Intn(120)),
			crm.ColHomesiteTotal:   strconv.Itoa(40 + rng.Intn(300)),
			crm.ColHomesiteSize:    choose([]string{"40'", "50'", "60'"}),
			crm.ColAcquisitionType: choose([]string{"Finished Lots", "Raw Land", "Option"}),
			crm.ColPrimarySeller:   choose(sellers),
			crm.ColProductType:     choose(products),
		}

		// Milestones advance with the deal's position in the pipeline.
		switch i % 4 {
		case 0:
			deal[crm.ColGFSubmittal] = date(-60)
			deal[crm.ColGFMeeting] = date(-30)
			deal[crm.ColFinalApproval] = date(-25)
			deal[crm.ColContractExecution] = date(-90)
			deal[crm.ColProjectedClosing] = date(60 + rng.Intn(90))
			deal[crm.ColIPExpiration] = date(rng.Intn(60))
		case 1:
			deal[crm.ColGFSubmittal] = date(-10)
			deal[crm.ColGFMeeting] = date(rng.Intn(40) - 10)
			deal[crm.ColProjectedClosing] = date(120)
		case 2:
			deal[crm.ColProjectedClosing] = date(200 + rng.Intn(100))
		}
		if messy && i%7 == 3 {
			deal[crm.ColDaysToIPExp] = "NaN"
		}
		if messy && i%9 == 5 {
			deal[crm.ColProjectedClosing] = "TBD"
		}

		nTasks := rng.Intn(4)
		if nTasks == 0 {
			combined.Rows = append(combined.Rows, row(combined.Headers, deal, nil, messy))
		}
		for j := 0; j < nTasks; j++ {
			start := rng.Intn(60) - 45
			task := map[string]string{
				crm.ColTaskCategory:   choose(categories),
				crm.ColOwner:          choose(owners),
				crm.ColSubject:        choose(subjects),
				crm.ColStartDate:      date(start),
				crm.ColDueDate:        date(start + 5 + rng.Intn(40)),
				crm.ColVendorAssigned: choose([]string{"", "Acme Surveying", "Terra Labs"}),
				crm.ColPriority:       choose([]string{"Low", "Normal", "High"}),
				crm.ColStatusReason:   choose(statuses),
				crm.ColModifiedOn:     date(-rng.Intn(10)),
			}
			if task[crm.ColStatusReason] == crm.StatusCompleted {
				task[crm.ColActualEnd] = date(start + 3)
			}
			r := row(combined.Headers, deal, task, messy)
			combined.Rows = append(combined.Rows, r)
			if messy && j == 0 && i%5 == 0 {
				combined.Rows = append(combined.Rows, r)
			}
		}

		nAppts := rng.Intn(3)
		for j := 0; j < nAppts; j++ {
			appts.Rows = append(appts.Rows, appointmentRow(appts.Headers, rng, name, date(rng.Intn(30)-10), messy))
		}
	}
	if messy {
		appts.Rows = append(appts.Rows, appointmentRow(appts.Headers, rng, "Retired Deal 0", date(-3), true))
	}

	return combined, appts
}

func row(headers []string, deal, task map[string]string, messy bool) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		key := h
		if messy {
			key = stripSuffix(h)
		}
		if v, ok := deal[key]; ok && i < len(crm.DealColumns) {
			out[i] = v
			continue
		}
		out[i] = task[key]
	}
	return out
}

func appointmentRow(headers []string, rng *rand.Rand, regarding, start string, messy bool) []string {
	desc := "Coordinate next steps with the seller."
	if messy {
		desc = "<p>Coordinate <b>next steps</b> with the seller.</p><br>"
	}
	values := map[string]string{
		"Appointment (Do Not Modify)":  fmt.Sprintf("%08x", rng.Uint32()),
		"Row Checksum (Do Not Modify)": fmt.Sprintf("%08x", rng.Uint32()),
		"Modified On (Do Not Modify)":  start,
		crm.ColSubject:                 pick(rng, []string{"Site walk", "Seller call", "Board prep", "Kickoff"}),
		crm.ColRegarding:               regarding,
		crm.ColOwner:                   pick(rng, owners),
		crm.ColStatus:                  pick(rng, []string{"Open", "Completed", "Canceled"}),
		crm.ColStartTime:               start,
		crm.ColEndTime:                 start,
		crm.ColCategory:                pick(rng, []string{"Meeting", "Call"}),
		crm.ColDescription:             desc,
		"Location":                     pick(rng, []string{"Field office", "HQ", "Virtual"}),
	}
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = values[h]
	}
	return out
}

func pick(rng *rand.Rand, xs []string) string {
	return xs[rng.Intn(len(xs))]
}

func stripSuffix(h string) string {
	for i := range h {
		if h[i] == '(' {
			j := i
			for j > 0 && h[j-1] == ' ' {
				j--
			}
			return h[:j]
		}
	}
	return h
}

// Save writes each table as a single-sheet workbook in outDir and returns the file paths.
func Save(outDir string, tables ...workbook.Table) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)

		if err := writeRow(f, sheet, 1, t.Headers); err != nil {
			return nil, err
		}
		for i, r := range t.Rows {
			if err := writeRow(f, sheet, i+2, r); err != nil {
				return nil, err
			}
		}

		path := filepath.Join(outDir, t.Name)
		if err := f.SaveAs(path); err != nil {
			f.Close()
			return nil, fmt.Errorf("save %s: %w", path, err)
		}
		f.Close()
		paths = append(paths, path)
	}
	return paths, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(sheet, cell, &row)
}
