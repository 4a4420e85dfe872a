package stats

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"dealboard/internal/crm"
)

// Cohort names a navigational subset of deals.
type Cohort string

const (
	CohortAll                      Cohort = "all"
	CohortApproved                 Cohort = "approved"
	CohortInSchedule               Cohort = "in_schedule"
	CohortPreSubmittal             Cohort = "pre_submittal"
	CohortApprovalWithoutSubmittal Cohort = "approval_without_submittal"
)

// Partition lists the cohorts every deal falls into exactly one of, in display order.
var Partition = []Cohort{CohortApproved, CohortInSchedule, CohortPreSubmittal, CohortApprovalWithoutSubmittal}

var cohortLabels = map[Cohort]string{
	CohortAll:                      "All Deals",
	CohortApproved:                 "Greenfolder Approved, Not Yet Closed",
	CohortInSchedule:               "Green Folder Schedule",
	CohortPreSubmittal:             "Letters of Intent",
	CohortApprovalWithoutSubmittal: "Approval Without Submittal",
}

// Label is the display name of the cohort.
func (c Cohort) Label() string {
	if l, ok := cohortLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCohort accepts a cohort key or its display label, case-insensitively. Empty means all deals.
func ParseCohort(s string) (Cohort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CohortAll, nil
	}
	for c, label := range cohortLabels {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, label) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown cohort %q", s)
}

// CohortOf places a deal in its partition cohort from the presence of its submittal
// and final-approval dates.
func CohortOf(d crm.Deal) Cohort {
	submitted := d.GFSubmittal != nil
	approved := d.FinalApproval != nil
	switch {
	case approved && submitted:
		return CohortApproved
	case submitted:
		return CohortInSchedule
	case approved:
		return CohortApprovalWithoutSubmittal
	default:
		return CohortPreSubmittal
	}
}

// Contains reports whether d belongs to c.
func (c Cohort) Contains(d crm.Deal) bool {
	return c == CohortAll || CohortOf(d) == c
}

// FilterCohort selects the cohort's deals from the full relation in relation order.
// Pre-submittal deals come back ordered by (stage, sub-market), ties by ingestion row.
func FilterCohort(deals []crm.Deal, c Cohort) []crm.Deal {
	out := make([]crm.Deal, 0, len(deals))
	for _, d := range deals {
		if c.Contains(d) {
			out = append(out, d)
		}
	}
	if c == CohortPreSubmittal {
		slices.SortStableFunc(out, func(a, b crm.Deal) int {
			return cmp.Or(
				cmp.Compare(a.Stage, b.Stage),
				cmp.Compare(a.SubMarket, b.SubMarket),
				cmp.Compare(a.Row, b.Row),
			)
		})
	}
	return out
}

// CountCohorts returns the size of every cohort, including CohortAll.
func CountCohorts(deals []crm.Deal) map[Cohort]int {
	counts := map[Cohort]int{CohortAll: len(deals)}
	for _, c := range Partition {
		counts[c] = 0
	}
	for _, d := range deals {
		counts[CohortOf(d)]++
	}
	return counts
}

// FindDeal looks a deal up by identifier. An exact match wins over a case-insensitive one.
func FindDeal(deals []crm.Deal, regarding string) (crm.Deal, bool) {
	regarding = strings.TrimSpace(regarding)
	if regarding == "" {
		return crm.Deal{}, false
	}
	for _, d := range deals {
		if d.Regarding == regarding {
			return d, true
		}
	}
	for _, d := range deals {
		if strings.EqualFold(d.Regarding, regarding) {
			return d, true
		}
	}
	return crm.Deal{}, false
}
