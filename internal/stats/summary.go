package stats

import (
	"dealboard/internal/crm"

	mstats "github.com/montanaflynn/stats"
)

// CohortSummary is the headline of one cohort.
type CohortSummary struct {
	Cohort                   Cohort  `json:"cohort"`
	Label                    string  `json:"label"`
	Deals                    int     `json:"deals"`
	Homesites                int     `json:"homesites"`
	MedianDaysToIPExpiration float64 `json:"median_days_to_ip_expiration"`
}

// SummarizeCohort computes the headline of c over the full deal relation.
func SummarizeCohort(deals []crm.Deal, c Cohort) CohortSummary {
	members := FilterCohort(deals, c)
	s := CohortSummary{Cohort: c, Label: c.Label(), Deals: len(members)}
	if len(members) == 0 {
		return s
	}

	homesites := make(mstats.Float64Data, len(members))
	days := make(mstats.Float64Data, len(members))
	for i, d := range members {
		homesites[i] = float64(d.HomesiteTotal)
		days[i] = float64(d.DaysToIPExpiration)
	}

	if sum, err := mstats.Sum(homesites); err == nil {
		s.Homesites = int(sum)
	}
	if med, err := mstats.Median(days); err == nil {
		s.MedianDaysToIPExpiration = med
	}
	return s
}

// SummarizeAll returns the all-deals summary followed by each partition cohort.
func SummarizeAll(deals []crm.Deal) []CohortSummary {
	out := make([]CohortSummary, 0, len(Partition)+1)
	out = append(out, SummarizeCohort(deals, CohortAll))
	for _, c := range Partition {
		out = append(out, SummarizeCohort(deals, c))
	}
	return out
}
