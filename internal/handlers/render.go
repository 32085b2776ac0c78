// internal/handlers/render.go
//
// Template rendering and SEO head assembly.
//
// Each render helper seeds a fresh head.Builder (charset, title,
// canonical tag, per-page meta), then executes one of the embedded
// templates.  The not-found and disambiguation pages are real rendered
// pages with navigation back into the directory — never a raw error or
// a blank screen.

package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/indiebookshop/directory/internal/bookshop"
	"github.com/indiebookshop/directory/internal/canonical"
	"github.com/indiebookshop/directory/internal/geo"
	"github.com/indiebookshop/directory/internal/head"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type stateCount struct {
	Code  string
	Name  string
	Path  string
	Count int
}

type shopLink struct {
	Shop bookshop.Record
	URL  string
}

func (s *Server) newHead() *head.Builder {
	h := head.New()
	h.Meta(`<meta charset="utf-8">`)
	h.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	if s.cfg.Site.Title != "" {
		h.SetTitle(s.cfg.Site.Title)
	}
	return h
}

func (s *Server) execute(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		zap.L().Error("template render failed",
			zap.String("template", name), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

/*──────────────────────────── page renderers ───────────────────────────────*/

func (s *Server) renderDetail(w http.ResponseWriter, _ *http.Request,
	shop bookshop.Record, canonicalURL string) {

	stateName := geo.FullName(shop.StateCode())

	h := s.newHead()
	h.SetTitle(shop.Name + " — " + shop.City + ", " + stateName)
	h.Canonical(canonicalURL)
	if shop.Description != "" {
		h.Meta(`<meta name="description" content="` +
			template.HTMLEscapeString(shop.Description) + `">`)
	}
	h.JSONLD(bookstoreJSONLD(shop, canonicalURL))

	s.execute(w, "detail.html", map[string]any{
		"Head":      h,
		"Shop":      shop,
		"StateName": stateName,
	})
}

func (s *Server) renderDisambiguation(w http.ResponseWriter, _ *http.Request,
	candidates []bookshop.Record) {

	links := make([]shopLink, 0, len(candidates))
	for _, c := range candidates {
		links = append(links, shopLink{Shop: c, URL: detailPathQualified(c)})
	}

	h := s.newHead()
	h.SetTitle("Which bookshop did you mean?")
	// Ambiguous URLs must not be indexed under any single candidate.
	h.Meta(`<meta name="robots" content="noindex">`)

	s.execute(w, "disambiguation.html", map[string]any{
		"Head":  h,
		"Links": links,
	})
}

func (s *Server) renderCountyStates(w http.ResponseWriter, _ *http.Request,
	countySeg string, states []string) {

	type stateChoice struct {
		Name string
		Path string
	}
	choices := make([]stateChoice, 0, len(states))
	for _, code := range states {
		choices = append(choices, stateChoice{
			Name: geo.FullName(code),
			Path: "/directory/county/" + strings.ToLower(code) + "/" + countySeg,
		})
	}

	h := s.newHead()
	h.SetTitle(countyTitle(countySeg) + " — choose a state")
	h.Meta(`<meta name="robots" content="noindex">`)

	s.execute(w, "county_states.html", map[string]any{
		"Head":    h,
		"County":  countyTitle(countySeg),
		"Choices": choices,
	})
}

func (s *Server) renderCountyListing(w http.ResponseWriter, _ *http.Request,
	countySeg, stateSeg string, shops []bookshop.Record) {

	h := s.newHead()
	title := "Bookshops in " + countyTitle(countySeg)
	if stateSeg != "" {
		title += ", " + stateDisplayName(stateSeg)
	}
	h.SetTitle(title)
	canonPath := "/directory/county/" + strings.ToLower(countySeg)
	if stateSeg != "" {
		canonPath = "/directory/county/" + strings.ToLower(stateSeg) +
			"/" + strings.ToLower(countySeg)
	}
	h.Canonical(strings.TrimRight(s.cfg.Site.BaseURL, "/") + canonPath)

	s.execute(w, "listing.html", map[string]any{
		"Head":    h,
		"Heading": title,
		"Links":   canonicalLinks(shops, s.cfg.Site.BaseURL),
	})
}

func (s *Server) renderStateListing(w http.ResponseWriter, _ *http.Request,
	stateSeg string, shops []bookshop.Record) {

	title := "Bookshops in " + stateDisplayName(stateSeg)

	h := s.newHead()
	h.SetTitle(title)
	h.Canonical(strings.TrimRight(s.cfg.Site.BaseURL, "/") +
		"/directory/state/" + strings.ToLower(stateSeg))

	s.execute(w, "listing.html", map[string]any{
		"Head":    h,
		"Heading": title,
		"Links":   canonicalLinks(shops, s.cfg.Site.BaseURL),
	})
}

func (s *Server) renderHome(w http.ResponseWriter, _ *http.Request,
	states []stateCount, visitorRegion string) {

	h := s.newHead()
	h.Canonical(strings.TrimRight(s.cfg.Site.BaseURL, "/") + "/")

	var near *stateCount
	for i := range states {
		if states[i].Code == visitorRegion {
			near = &states[i]
			break
		}
	}

	s.execute(w, "home.html", map[string]any{
		"Head":   h,
		"States": states,
		"Near":   near,
	})
}

func (s *Server) notFound(w http.ResponseWriter, _ *http.Request) {
	h := s.newHead()
	h.SetTitle("Bookshop not found")
	h.Meta(`<meta name="robots" content="noindex">`)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := pages.ExecuteTemplate(w, "notfound.html", map[string]any{"Head": h}); err != nil {
		zap.L().Error("template render failed", zap.Error(err))
	}
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

// canonicalLinks pairs each shop with its canonical URL for listing
// pages, so in-app links never resurrect a legacy shape.
func canonicalLinks(shops []bookshop.Record, baseURL string) []shopLink {
	links := make([]shopLink, 0, len(shops))
	for _, shop := range shops {
		links = append(links, shopLink{Shop: shop, URL: canonical.URL(shop, baseURL)})
	}
	return links
}

// stateDisplayName resolves a state URL segment — code, full name, or
// slug form — to the table's display name.  Unknown input passes
// through unchanged.
func stateDisplayName(seg string) string {
	if code, ok := geo.Abbreviation(strings.ReplaceAll(seg, "-", " ")); ok {
		return geo.FullName(code)
	}
	return geo.FullName(seg)
}

// countyTitle turns a URL segment back into a display name:
// "sussex-county" → "Sussex County".
func countyTitle(seg string) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(seg), "-", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	base := strings.Join(words, " ")
	if !strings.HasSuffix(base, " County") && base != "" {
		base += " County"
	}
	return base
}

// bookstoreJSONLD renders the schema.org Bookstore block for a detail
// page.  json.Marshal output is safe to embed inside a script tag.
func bookstoreJSONLD(shop bookshop.Record, canonicalURL string) string {
	doc := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Bookstore",
		"name":     shop.Name,
		"url":      canonicalURL,
		"address": map[string]string{
			"@type":           "PostalAddress",
			"addressLocality": shop.City,
			"addressRegion":   shop.StateCode(),
		},
	}
	if shop.Latitude != 0 || shop.Longitude != 0 {
		doc["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  shop.Latitude,
			"longitude": shop.Longitude,
		}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(b)
}
