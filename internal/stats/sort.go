package stats

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"dealboard/internal/crm"
)

// SortFields are the sort choices offered first; every other deal column is accepted too.
var SortFields = []string{crm.ColProjectedClosing, crm.ColGFSubmittal, crm.ColDealStage, crm.ColSubMarket}

// ResolveSortField maps a case-insensitive column name onto a deal column.
func ResolveSortField(field string) (string, error) {
	field = strings.TrimSpace(field)
	for _, col := range crm.DealColumns {
		if strings.EqualFold(col, field) {
			return col, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", field)
}

// SortDeals returns a sorted copy of deals. Absent values sort last in both directions
// and ties keep ingestion order.
func SortDeals(deals []crm.Deal, field string, descending bool) ([]crm.Deal, error) {
	col, err := ResolveSortField(field)
	if err != nil {
		return nil, err
	}

	out := slices.Clone(deals)
	slices.SortStableFunc(out, func(a, b crm.Deal) int {
		c, absent := compareField(a, b, col)
		if descending && !absent {
			c = -c
		}
		return cmp.Or(c, cmp.Compare(a.Row, b.Row))
	})
	return out, nil
}

// compareField orders a and b on col. absent is true when either side has no value,
// in which case the result already places the absent side last.
func compareField(a, b crm.Deal, col string) (int, bool) {
	switch col {
	case crm.ColDaysToIPExp:
		return cmp.Compare(a.DaysToIPExpiration, b.DaysToIPExpiration), false
	case crm.ColHomesiteTotal:
		return cmp.Compare(a.HomesiteTotal, b.HomesiteTotal), false
	}

	if crm.DealDateColumns[col] {
		da, db := a.Date(col), b.Date(col)
		switch {
		case da == nil && db == nil:
			return 0, true
		case da == nil:
			return 1, true
		case db == nil:
			return -1, true
		}
		return da.Compare(*db), false
	}

	va, vb := a.Value(col), b.Value(col)
	switch {
	case va == "" && vb == "":
		return 0, true
	case va == "":
		return 1, true
	case vb == "":
		return -1, true
	}
	return cmp.Compare(va, vb), false
}
