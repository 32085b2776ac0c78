// internal/resolver/path.go
//
// Parsing of bookshop detail URLs into a tagged variant.
//
// Context
// -------
// Four path shapes under /bookshop have accumulated over the years and
// all of them must keep resolving:
//
//   /bookshop/42                          legacy numeric id
//   /bookshop/powells-books               short canonical form
//   /bookshop/or/portland/powells-books   state / city / name
//   /bookshop/or/multnomah-county/portland/powells-books
//                                         state / county / city / name
//
// Instead of re-counting segments at every call site, ParsePath produces
// one Path value tagged with its Kind, and the resolver switches on the
// tag.  A segment that looks numeric but fails to parse is treated as a
// name, never as an error.

package resolver

import (
	"strconv"
	"strings"
)

// Kind tags the recognized URL shapes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNumericID
	KindNameOnly
	KindStateCityName
	KindStateCountyCityName
)

func (k Kind) String() string {
	switch k {
	case KindNumericID:
		return "numeric_id"
	case KindNameOnly:
		return "name_only"
	case KindStateCityName:
		return "state_city_name"
	case KindStateCountyCityName:
		return "state_county_city_name"
	default:
		return "unknown"
	}
}

// Path is the parsed form of a detail URL.  Only the fields implied by
// Kind are set; all string fields are lowercase URL segments.
type Path struct {
	Kind   Kind
	ID     uint64
	Name   string
	City   string
	County string
	State  string
}

// ParsePath parses the portion of the URL path after /bookshop/.  It
// accepts either the raw remainder ("or/portland/powells-books") or a
// full path with the /bookshop prefix.  Kind is KindUnknown when the
// segment count fits no known shape.
func ParsePath(p string) Path {
	p = strings.Trim(strings.ToLower(p), "/")
	p = strings.TrimPrefix(p, "bookshop/")
	if p == "" || p == "bookshop" {
		return Path{Kind: KindUnknown}
	}

	segs := strings.Split(p, "/")
	switch len(segs) {
	case 1:
		if id, err := strconv.ParseUint(segs[0], 10, 64); err == nil {
			return Path{Kind: KindNumericID, ID: id}
		}
		return Path{Kind: KindNameOnly, Name: segs[0]}
	case 3:
		return Path{
			Kind:  KindStateCityName,
			State: segs[0],
			City:  segs[1],
			Name:  segs[2],
		}
	case 4:
		return Path{
			Kind:   KindStateCountyCityName,
			State:  segs[0],
			County: segs[1],
			City:   segs[2],
			Name:   segs[3],
		}
	default:
		return Path{Kind: KindUnknown}
	}
}
