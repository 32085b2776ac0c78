// internal/geo/states.go
//
// Bidirectional state / province lookup table.
//
// Context
// -------
// Bookshop records and legacy URLs carry the state field in two shapes: a
// two-letter postal code ("OR") or a full name ("Oregon").  Historically
// the site kept near-duplicate copies of this table at every call site,
// which drifted.  It now lives here exactly once, built at init, and is
// never mutated afterwards.
//
// Coverage: the 50 US states, DC, the named US territories, and the
// Canadian provinces and territories.
//
// Notes
// -----
// • Lookups are case-insensitive on both directions.
// • FullName degrades gracefully: an unknown code is returned unchanged
//   so that stray values ("France") still render instead of crashing a
//   page.  Abbreviation reports ok=false instead, because callers branch
//   on it.

package geo

import "strings"

// codeToName is the single source of truth.  nameToCode is derived from
// it at init, so the two directions cannot drift apart.
var codeToName = map[string]string{
	// US states
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut",
	"DE": "Delaware", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan",
	"MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota",
	"OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania",
	"RI": "Rhode Island", "SC": "South Carolina", "SD": "South Dakota",
	"TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",

	// Federal district and territories
	"DC": "District of Columbia", "AS": "American Samoa", "GU": "Guam",
	"MP": "Northern Mariana Islands", "PR": "Puerto Rico",
	"VI": "U.S. Virgin Islands",

	// Canadian provinces and territories
	"AB": "Alberta", "BC": "British Columbia", "MB": "Manitoba",
	"NB": "New Brunswick", "NL": "Newfoundland and Labrador",
	"NS": "Nova Scotia", "NT": "Northwest Territories", "NU": "Nunavut",
	"ON": "Ontario", "PE": "Prince Edward Island", "QC": "Quebec",
	"SK": "Saskatchewan", "YT": "Yukon",
}

var nameToCode map[string]string

func init() {
	nameToCode = make(map[string]string, len(codeToName))
	for code, name := range codeToName {
		nameToCode[strings.ToLower(name)] = code
	}
}

// FullName maps a two-letter code to its full name.  Unknown input is
// returned unchanged.
func FullName(code string) string {
	if name, ok := codeToName[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}

// Abbreviation maps a full state or province name to its two-letter code.
// ok is false when the name is not in the table.
func Abbreviation(name string) (string, bool) {
	code, ok := nameToCode[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// KnownCode reports whether code is a table entry.
func KnownCode(code string) bool {
	_, ok := codeToName[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Codes returns every two-letter code in the table.  Order is undefined;
// callers that render lists must sort.
func Codes() []string {
	out := make([]string, 0, len(codeToName))
	for code := range codeToName {
		out = append(out, code)
	}
	return out
}
