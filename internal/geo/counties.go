// internal/geo/counties.go
//
// County-name normalization and the fuzzy comparison predicate.
//
// Context
// -------
// County data arrives in three shapes — "Sussex", "Sussex County", and
// the URL form "sussex-county" — so equality is decided at comparison
// time, never rewritten at storage time.  The predicate lives here as one
// named function so its behavior (including the known false-positive
// risk) is testable in isolation instead of being re-inlined at each
// call site.

package geo

import "strings"

// NormalizeCounty lowercases, turns hyphens into spaces, collapses inner
// whitespace, and strips one trailing "county" word.
func NormalizeCounty(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSuffix(s, " county")
	return strings.TrimSpace(s)
}

// CountiesMatch reports whether two county strings refer to the same
// county under the tolerant policy: equal after normalization, or one a
// substring of the other.  The substring rule absorbs data-entry variance
// but can false-positive on short names ("York" matches "New York"); that
// trade-off is intentional and pinned by tests rather than tightened
// silently.
func CountiesMatch(a, b string) bool {
	na, nb := NormalizeCounty(a), NormalizeCounty(b)
	if na == "" || nb == "" {
		return na == nb
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
