package ingest

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var parenthetical = regexp.MustCompile(`\s*\(.*?\)`)

// NormalizeColumn folds a raw header to its logical name: NFKC-folded, parenthesised
// suffixes removed, surrounding whitespace trimmed.
//
//	"Appointment (Do Not Modify)" -> "Appointment"
//	" Due Date (Task) "            -> "Due Date"
func NormalizeColumn(label string) string {
	s := norm.NFKC.String(label)
	s = parenthetical.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NormalizeColumns normalizes every label, preserving length and order.
func NormalizeColumns(labels []string) []string {
	return Normalizer{}.Columns(labels)
}

// Normalizer applies NormalizeColumn and then maps renamed export headers onto their
// canonical names. The zero value only normalizes.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer normalizes alias keys and targets once. When two keys fold to the same
// header the lexically smallest raw key wins. Chains (a -> b, b -> c) resolve to their
// final target so that normalizing twice changes nothing; a cycle stops before repeating.
func NewNormalizer(aliases map[string]string) Normalizer {
	if len(aliases) == 0 {
		return Normalizer{}
	}
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hop := make(map[string]string, len(aliases))
	for _, k := range keys {
		from, to := NormalizeColumn(k), NormalizeColumn(aliases[k])
		if _, ok := hop[from]; ok || from == to {
			continue
		}
		hop[from] = to
	}

	resolved := make(map[string]string, len(hop))
	for from, to := range hop {
		seen := map[string]bool{from: true}
		for {
			next, ok := hop[to]
			if !ok || seen[next] {
				break
			}
			seen[to] = true
			to = next
		}
		resolved[from] = to
	}
	return Normalizer{aliases: resolved}
}

// Column normalizes a single label.
func (n Normalizer) Column(label string) string {
	s := NormalizeColumn(label)
	if to, ok := n.aliases[s]; ok {
		return to
	}
	return s
}

// Columns normalizes labels, preserving length and order.
func (n Normalizer) Columns(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = n.Column(l)
	}
	return out
}
