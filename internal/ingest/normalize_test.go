package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Appointment (Do Not Modify)", "Appointment"},
		{"Row Checksum (Do Not Modify)", "Row Checksum"},
		{"  Regarding  ", "Regarding"},
		{"Due Date (Task) (Local)", "Due Date"},
		{"Projected Deal First Closing Date (Deal)", "Projected Deal First Closing Date"},
		{"Sub-Market", "Sub-Market"},
		{"\uff33\uff55\uff42\uff4a\uff45\uff43\uff54", "Subject"},
		{"Status Reason\uff08Task\uff09", "Status Reason"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeColumn(tc.in), "NormalizeColumn(%q)", tc.in)
	}
}

func TestNormalizeColumns_Idempotent(t *testing.T) {
	raw := []string{
		"Regarding (Deal)", " Subject", "Start Time (UTC) ", "a ((b))", "x (y", "(lead) Owner",
		"Description", "Comment ( )", "",
	}
	once := NormalizeColumns(raw)
	twice := NormalizeColumns(once)

	assert.Len(t, once, len(raw))
	assert.Equal(t, once, twice)
}

func TestNormalizer_Aliases(t *testing.T) {
	n := NewNormalizer(map[string]string{
		"Stage (Calculated)": "Calculated Deal Stage",
		"Market":             "Sub-Market",
	})

	got := n.Columns([]string{"Regarding", "Stage", "Market (Region)", "Owner"})
	assert.Equal(t, []string{"Regarding", "Calculated Deal Stage", "Sub-Market", "Owner"}, got)
	assert.Equal(t, got, n.Columns(got))
}

func TestNormalizer_AliasChain(t *testing.T) {
	n := NewNormalizer(map[string]string{
		"Stage":      "Deal Stage",
		"Deal Stage": "Calculated Deal Stage",
	})

	got := n.Columns([]string{"Stage", "Deal Stage (Old)", "Calculated Deal Stage"})
	assert.Equal(t, []string{"Calculated Deal Stage", "Calculated Deal Stage", "Calculated Deal Stage"}, got)
	assert.Equal(t, got, n.Columns(got))
}

func TestNormalizer_AliasCollision(t *testing.T) {
	aliases := map[string]string{
		"Market (Region)": "Sub-Market",
		"Market (Area)":   "Region",
	}
	// "Market (Area)" sorts first, so it owns the folded key on every run.
	for i := 0; i < 20; i++ {
		assert.Equal(t, "Region", NewNormalizer(aliases).Column("Market"))
	}
}

func TestNormalizer_AliasCycle(t *testing.T) {
	n := NewNormalizer(map[string]string{"A": "B", "B": "A"})
	assert.Equal(t, "B", n.Column("A"))
	assert.Equal(t, "A", n.Column("B"))
}
