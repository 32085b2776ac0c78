// internal/handlers/handlers_test.go
//
// End-to-end handler tests over a fixture collection.
//
// Context
// -------
// fakeSource ── minimal ShopSource so the full chi routing and render
// pipeline runs without a database.  Each test fires an httptest request
// and asserts status, Location header, or body fragments.
//
// Run: go test ./internal/handlers -v

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/indiebookshop/directory/internal/bookshop"
	"github.com/indiebookshop/directory/internal/config"
)

const base = "https://indiebookshop.com"

type fakeSource struct {
	shops []bookshop.Record
	err   error
}

func (f *fakeSource) Shops(context.Context) ([]bookshop.Record, error) {
	return f.shops, f.err
}

var fixture = []bookshop.Record{
	{ID: 42, Name: "Powell's Books", City: "Portland", State: "OR",
		County: "Multnomah County", Description: "Legendary new and used books."},
	{ID: 7, Name: "The Strand", City: "New York", State: "NY"},
	{ID: 11, Name: "Book Nook", City: "Barre", State: "VT", County: "Washington County"},
	{ID: 12, Name: "Book Nook", City: "Hillsboro", State: "OR", County: "Washington County"},
}

func testServer(src ShopSource) http.Handler {
	cfg := &config.Config{}
	cfg.Site.BaseURL = base
	cfg.Site.Title = "Indie Bookshop Directory"

	r := chi.NewRouter()
	New(cfg, src).Routes(r)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestDetailServedOnCanonicalPath(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/bookshop/powells-books")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"Powell&#39;s Books",
		`rel="canonical" href="` + base + `/bookshop/powells-books"`,
		`property="og:url"`,
		`"@type":"Bookstore"`,
		"Portland, Oregon",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestLegacyNumericIDRedirects(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/bookshop/42")

	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want 308", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != base+"/bookshop/powells-books" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestRicherLegacyShapeRedirects(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/bookshop/or/portland/powells-books")

	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want 308", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != base+"/bookshop/powells-books" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestUnknownShopRendersNotFoundPage(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/bookshop/no-such-shop")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Back to the directory") {
		t.Fatalf("404 page missing navigation: %q", rr.Body.String())
	}
}

func TestSlugCollisionRendersDisambiguation(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/bookshop/book-nook")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 choice page", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "/bookshop/vt/barre/book-nook") ||
		!strings.Contains(body, "/bookshop/or/hillsboro/book-nook") {
		t.Fatalf("disambiguation links missing: %q", body)
	}
	if !strings.Contains(body, `name="robots" content="noindex"`) {
		t.Errorf("disambiguation page should be noindex")
	}
}

func TestCountyAmbiguityListsStates(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/directory/county/washington")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "/directory/county/or/washington") ||
		!strings.Contains(body, "/directory/county/vt/washington") {
		t.Fatalf("state choices missing: %q", body)
	}
}

func TestCountyQualifiedListing(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/directory/county/or/washington")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, base+"/bookshop/book-nook") {
		t.Fatalf("listing should link the canonical URL: %q", body)
	}
	if strings.Contains(body, "Barre") {
		t.Fatalf("VT shop leaked into OR listing: %q", body)
	}
}

func TestStateListing(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/directory/state/oregon")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Bookshops in Oregon") {
		t.Fatalf("heading missing: %q", body)
	}
	if !strings.Contains(body, base+"/bookshop/powells-books") {
		t.Fatalf("canonical link missing: %q", body)
	}
}

func TestHomeListsStates(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	rr := get(t, h, "/")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Oregon", "New York", "Vermont", "/directory/state/or"} {
		if !strings.Contains(body, want) {
			t.Errorf("home body missing %q", want)
		}
	}
}

func TestCollectionFailureIs503(t *testing.T) {
	h := testServer(&fakeSource{err: errors.New("db down")})
	rr := get(t, h, "/bookshop/powells-books")

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := testServer(&fakeSource{shops: fixture})
	if rr := get(t, h, "/healthz"); rr.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rr.Code)
	}
}
