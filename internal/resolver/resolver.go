// internal/resolver/resolver.go
//
// Entity resolution: parsed URL segments → bookshop record(s).
//
// Context
// -------
// Resolve is a pure function over the in-memory collection snapshot.  It
// holds the one piece of real policy in the site: which record(s) a URL
// names, and what happens when the answer is not exactly one.  Three
// outcomes exist and all three are first-class — a plain miss, a single
// match, and an ambiguity that the caller must render as a choice list
// rather than collapsing into a 404 or an arbitrary pick.
//
// Matching policy
// ---------------
//   - Numeric id wins outright; ids are unique so slug logic is skipped.
//   - Name-only compares name slugs; multiple hits are Ambiguous (the
//     old find-first behavior hid collisions).
//   - State accepts the two-letter code, the slugified full name, or the
//     raw value lowercased, because historical links used all three and
//     upstream data mixes representations.
//   - County uses the tolerant geo.CountiesMatch predicate; a record
//     with no county at all passes the county constraint.  Excluding
//     shops with missing county data would hide them from exactly the
//     URLs that should find them.

package resolver

import (
	"sort"
	"strings"

	"github.com/indiebookshop/directory/internal/bookshop"
	"github.com/indiebookshop/directory/internal/geo"
	"github.com/indiebookshop/directory/internal/slug"
)

// Outcome classifies a resolution result.
type Outcome int

const (
	NoMatch Outcome = iota
	Matched
	Ambiguous
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "none"
	}
}

// Result is request-scoped.  Shop is set for Matched; Candidates is set
// for Ambiguous (every record that tied).
type Result struct {
	Outcome    Outcome
	Shop       *bookshop.Record
	Candidates []bookshop.Record
}

// Resolve maps a parsed path to records in the collection snapshot.  An
// empty snapshot yields NoMatch; no input panics.
func Resolve(p Path, shops []bookshop.Record) Result {
	switch p.Kind {
	case KindNumericID:
		for i := range shops {
			if shops[i].ID == p.ID {
				return Result{Outcome: Matched, Shop: &shops[i]}
			}
		}
		return Result{}

	case KindNameOnly:
		return fromMatches(filter(shops, func(r bookshop.Record) bool {
			return slug.Make(r.Name) == p.Name
		}))

	case KindStateCityName:
		return fromMatches(filter(shops, func(r bookshop.Record) bool {
			return slug.Make(r.Name) == p.Name &&
				slug.Make(r.City) == p.City &&
				stateMatches(r.State, p.State)
		}))

	case KindStateCountyCityName:
		return fromMatches(filter(shops, func(r bookshop.Record) bool {
			return slug.Make(r.Name) == p.Name &&
				slug.Make(r.City) == p.City &&
				stateMatches(r.State, p.State) &&
				countySatisfied(r.County, p.County)
		}))

	default:
		return Result{}
	}
}

// CountyListing is the result of a county directory lookup.  When the
// county name exists in more than one state and no state was given,
// States lists each candidate (sorted two-letter codes) and Shops is
// empty; the page must offer state-qualified links instead of picking
// one arbitrarily.
type CountyListing struct {
	Shops  []bookshop.Record
	States []string
}

// Ambiguous reports whether the listing needs a state disambiguation
// page.
func (l CountyListing) Ambiguous() bool { return len(l.States) > 1 }

// ResolveCounty returns the shops in a county.  state may be empty; when
// it is, matches spanning several states come back as a disambiguation
// requirement rather than a merged list.
func ResolveCounty(county, state string, shops []bookshop.Record) CountyListing {
	matched := filter(shops, func(r bookshop.Record) bool {
		if r.County == "" || !geo.CountiesMatch(r.County, county) {
			return false
		}
		return state == "" || stateMatches(r.State, strings.ToLower(state))
	})

	if state == "" {
		seen := map[string]struct{}{}
		for _, r := range matched {
			seen[r.StateCode()] = struct{}{}
		}
		if len(seen) > 1 {
			states := make([]string, 0, len(seen))
			for s := range seen {
				states = append(states, s)
			}
			sort.Strings(states)
			return CountyListing{States: states}
		}
	}
	return CountyListing{Shops: matched}
}

// ByState returns every shop in the given state.  The argument may be a
// two-letter code, a full name, or the slug form; matching follows the
// same policy as detail resolution.  Used by the state directory pages.
func ByState(state string, shops []bookshop.Record) []bookshop.Record {
	seg := strings.ToLower(strings.TrimSpace(state))
	if seg == "" {
		return nil
	}
	return filter(shops, func(r bookshop.Record) bool {
		return stateMatches(r.State, seg)
	})
}

// stateMatches accepts the abbreviation, the slugified full name, or the
// raw stored value lowercased.  The triple check is deliberate: upstream
// data mixes "OR" and "Oregon", and historical URLs used both forms.
func stateMatches(stored, seg string) bool {
	if seg == "" {
		return false
	}
	if strings.ToLower(stored) == seg {
		return true
	}
	if slug.Make(geo.FullName(stored)) == seg {
		return true
	}
	if code, ok := geo.Abbreviation(stored); ok && strings.ToLower(code) == seg {
		return true
	}
	return false
}

// countySatisfied treats a record with no county data as passing the
// constraint.
func countySatisfied(stored, seg string) bool {
	if stored == "" {
		return true
	}
	return geo.CountiesMatch(stored, seg)
}

func filter(shops []bookshop.Record, keep func(bookshop.Record) bool) []bookshop.Record {
	var out []bookshop.Record
	for _, r := range shops {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func fromMatches(matched []bookshop.Record) Result {
	switch len(matched) {
	case 0:
		return Result{}
	case 1:
		return Result{Outcome: Matched, Shop: &matched[0]}
	default:
		return Result{Outcome: Ambiguous, Candidates: matched}
	}
}
