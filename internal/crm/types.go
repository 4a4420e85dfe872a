package crm

import "time"

// Task status labels with dedicated handling. Other labels are legal and counted only in totals.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Deal is one unique acquisition pipeline record. Date fields are UTC midnight or nil.
type Deal struct {
	Regarding          string
	SubMarket          string
	Stage              string
	GFSubmittal        *time.Time
	GFMeeting          *time.Time
	IPExpiration       *time.Time
	DaysToIPExpiration int
	ProjectedClosing   *time.Time
	HomesiteTotal      int
	HomesiteSize       string
	AcquisitionType    string
	PrimarySeller      string
	ProductType        string
	FinalApproval      *time.Time
	ContractExecution  *time.Time

	// Row is the ingestion position, used as the stable tie-break for every ordering.
	Row int
}

// Task belongs to a Deal through Regarding.
type Task struct {
	Regarding      string
	Category       string
	Owner          string
	Subject        string
	StartDate      *time.Time
	DueDate        *time.Time
	VendorAssigned string
	Priority       string
	Comment        string
	Status         string
	ActualEnd      *time.Time
	ModifiedOn     *time.Time
}

// Appointment belongs to a Deal through Regarding.
type Appointment struct {
	Regarding   string
	Subject     string
	Owner       string
	Status      string
	StartTime   *time.Time
	EndTime     *time.Time
	Category    string
	Description string

	// Extra holds the remaining non-system columns of the appointments table, keyed by header.
	Extra map[string]string
}

// CoercionWarning records a cell that could not be coerced and was treated as absent or zero.
type CoercionWarning struct {
	Relation string `json:"relation"`
	Column   string `json:"column"`
	Row      int    `json:"row"`
	Value    string `json:"value"`
}
