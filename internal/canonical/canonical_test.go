// internal/canonical/canonical_test.go
//
// Run: go test ./internal/canonical -v

package canonical

import (
	"strings"
	"testing"

	"github.com/indiebookshop/directory/internal/bookshop"
	"github.com/indiebookshop/directory/internal/resolver"
)

const base = "https://indiebookshop.com"

func TestURL(t *testing.T) {
	shop := bookshop.Record{ID: 42, Name: "Powell's Books", City: "Portland", State: "OR"}
	if got := URL(shop, base); got != base+"/bookshop/powells-books" {
		t.Fatalf("URL = %q", got)
	}
	// Trailing slash on base must not double up.
	if got := URL(shop, base+"/"); got != base+"/bookshop/powells-books" {
		t.Fatalf("URL with trailing slash = %q", got)
	}
}

func TestURLDegenerateNameFallsBackToID(t *testing.T) {
	shop := bookshop.Record{ID: 17, Name: "!!!"}
	if got := URL(shop, base); got != base+"/bookshop/17" {
		t.Fatalf("URL = %q, want id fallback", got)
	}
}

// A name that slugifies to pure digits would collide with id lookup on
// the single-segment path, so it canonicalizes by id instead and the
// numeric path must still resolve to the record.
func TestURLDigitOnlyNameFallsBackToID(t *testing.T) {
	shop := bookshop.Record{ID: 5, Name: "84", City: "London", State: "NY"}
	if got := URL(shop, base); got != base+"/bookshop/5" {
		t.Fatalf("URL = %q, want id fallback for digit-only name", got)
	}
	res := resolver.Resolve(resolver.ParsePath("/bookshop/5"), []bookshop.Record{shop})
	if res.Outcome != resolver.Matched || res.Shop.ID != shop.ID {
		t.Fatalf("canonical path did not resolve back to shop: %+v", res)
	}
}

// TestRoundTrip: resolving the segments of a shop's canonical URL against
// a collection containing it returns exactly that shop.
func TestRoundTrip(t *testing.T) {
	shops := []bookshop.Record{
		{ID: 42, Name: "Powell's Books", City: "Portland", State: "OR"},
		{ID: 7, Name: "The Strand", City: "New York", State: "NY"},
		{ID: 9, Name: "Annie Bloom's Books", City: "Portland", State: "Oregon"},
		{ID: 5, Name: "84", City: "London", State: "NY"},
	}
	for _, shop := range shops {
		u := URL(shop, base)
		if !strings.HasPrefix(u, base+"/bookshop/") {
			t.Fatalf("canonical URL %q lacks /bookshop/ prefix", u)
		}
		path := strings.TrimPrefix(u, base)
		res := resolver.Resolve(resolver.ParsePath(path), shops)
		if res.Outcome != resolver.Matched || res.Shop.ID != shop.ID {
			t.Errorf("round-trip failed for %q: %+v", shop.Name, res)
		}
	}
}
