// internal/canonical/canonical.go
//
// Canonical URL policy for bookshop detail pages.
//
// The site accepts many URL shapes on input but always emits exactly one
// on output: the shortest form, {base}/bookshop/{name-slug}.  State,
// county, and city never appear in canonical URLs even though the
// resolver accepts them; every canonical tag, redirect target, and
// generated link funnels through here so the policy cannot fork.

package canonical

import (
	"strconv"
	"strings"

	"github.com/indiebookshop/directory/internal/bookshop"
	"github.com/indiebookshop/directory/internal/slug"
)

// Path returns the canonical path for a shop: /bookshop/{slug}.  A shop
// whose name slugifies to nothing — or to pure digits, which a single
// path segment always means "lookup by id" — falls back to
// /bookshop/{id} so every record stays addressable via its own
// canonical URL.
func Path(shop bookshop.Record) string {
	s := slug.Make(shop.Name)
	if s == "" || allDigits(s) {
		s = strconv.FormatUint(shop.ID, 10)
	}
	return slug.BuildPath("bookshop", s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// URL returns the absolute canonical URL under baseURL.
func URL(shop bookshop.Record, baseURL string) string {
	return strings.TrimRight(baseURL, "/") + Path(shop)
}
