// internal/handlers/handlers.go
//
// HTTP handlers for the directory.
//
// Context
// -------
// Every page goes through the same straight-line pipeline: take a
// snapshot of the collection, parse the path, resolve, decide, render.
// The handlers own no resolution policy themselves — they translate
// redirect.Decision values into HTTP and feed the head builder — so the
// core stays a pure function library between routing and rendering.
//
// Routes
// ------
//   GET /                                     directory index by state
//   GET /bookshop/*                           detail page, all legacy shapes
//   GET /directory/state/{state}              state listing
//   GET /directory/county/{county}            county listing (may disambiguate)
//   GET /directory/county/{state}/{county}    state-qualified county listing
//   GET /healthz                              liveness probe

package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/indiebookshop/directory/internal/bookshop"
	"github.com/indiebookshop/directory/internal/canonical"
	"github.com/indiebookshop/directory/internal/config"
	"github.com/indiebookshop/directory/internal/geo"
	"github.com/indiebookshop/directory/internal/metrics"
	"github.com/indiebookshop/directory/internal/redirect"
	"github.com/indiebookshop/directory/internal/requestinfo"
	"github.com/indiebookshop/directory/internal/resolver"
	"github.com/indiebookshop/directory/internal/slug"
)

// ShopSource is the minimal contract the handlers need from the
// collection.  Defined here so tests can inject a fixture without a
// database.
type ShopSource interface {
	Shops(ctx context.Context) ([]bookshop.Record, error)
}

// Server bundles config, the shop source, and the parsed templates.
type Server struct {
	cfg   *config.Config
	shops ShopSource
}

// New constructs a Server.
func New(cfg *config.Config, shops ShopSource) *Server {
	return &Server{cfg: cfg, shops: shops}
}

// Routes mounts every handler on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.home)
	r.Get("/bookshop/*", s.bookshop)
	r.Get("/directory/state/{state}", s.state)
	r.Get("/directory/county/{county}", s.county)
	r.Get("/directory/county/{state}/{county}", s.county)
	r.Get("/healthz", s.healthz)
	r.NotFound(s.notFound)
}

/*──────────────────────────── detail page ──────────────────────────────────*/

// bookshop serves the detail page for every accepted URL shape, issuing
// a permanent redirect whenever the requested path is not the canonical
// one.
func (s *Server) bookshop(w http.ResponseWriter, r *http.Request) {
	shops, err := s.shops.Shops(r.Context())
	if err != nil {
		zap.L().Error("shop collection unavailable", zap.Error(err))
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	res := resolver.Resolve(resolver.ParsePath(r.URL.Path), shops)
	metrics.ResolveTotal.WithLabelValues(res.Outcome.String()).Inc()

	var canon string
	if res.Outcome == resolver.Matched {
		canon = canonical.URL(*res.Shop, s.cfg.Site.BaseURL)
	}

	switch d := redirect.Decide(r.URL.Path, res, canon); d.Action {
	case redirect.Redirect:
		metrics.RedirectsTotal.Inc()
		http.Redirect(w, r, d.Target, redirect.StatusCode)
	case redirect.Serve:
		s.renderDetail(w, r, *res.Shop, canon)
	case redirect.Disambiguate:
		s.renderDisambiguation(w, r, res.Candidates)
	default:
		s.notFound(w, r)
	}
}

/*──────────────────────────── directory pages ──────────────────────────────*/

// county lists the shops of one county.  Without a state segment a
// county name shared by several states yields a choice page, one link
// per state-qualified variant.
func (s *Server) county(w http.ResponseWriter, r *http.Request) {
	countySeg := chi.URLParam(r, "county")
	stateSeg := chi.URLParam(r, "state")

	shops, err := s.shops.Shops(r.Context())
	if err != nil {
		zap.L().Error("shop collection unavailable", zap.Error(err))
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	listing := resolver.ResolveCounty(countySeg, stateSeg, shops)
	if listing.Ambiguous() {
		metrics.ResolveTotal.WithLabelValues(resolver.Ambiguous.String()).Inc()
		s.renderCountyStates(w, r, countySeg, listing.States)
		return
	}
	s.renderCountyListing(w, r, countySeg, stateSeg, listing.Shops)
}

// state lists every shop in one state or province.
func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	stateSeg := chi.URLParam(r, "state")

	shops, err := s.shops.Shops(r.Context())
	if err != nil {
		zap.L().Error("shop collection unavailable", zap.Error(err))
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	matched := resolver.ByState(stateSeg, shops)
	s.renderStateListing(w, r, stateSeg, matched)
}

// home renders the index: states with shop counts.  The visitor's own
// region (from GeoIP, when available) is surfaced first.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	shops, err := s.shops.Shops(r.Context())
	if err != nil {
		zap.L().Error("shop collection unavailable", zap.Error(err))
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	counts := map[string]int{}
	for _, shop := range shops {
		counts[shop.StateCode()]++
	}
	states := make([]stateCount, 0, len(counts))
	for code, n := range counts {
		states = append(states, stateCount{
			Code: code, Name: geo.FullName(code),
			Path: "/directory/state/" + strings.ToLower(code), Count: n,
		})
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Name < states[j].Name })

	var visitorRegion string
	if info := requestinfo.FromContext(r.Context()); info != nil {
		if geo.KnownCode(info.Geo.Region) {
			visitorRegion = info.Geo.Region
		}
	}

	s.renderHome(w, r, states, visitorRegion)
}

/*──────────────────────────── misc ─────────────────────────────────────────*/

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// detailPathQualified builds the state/city qualified path for a shop.
// Used only on disambiguation pages, where the short canonical form
// cannot tell colliding shops apart.
func detailPathQualified(shop bookshop.Record) string {
	p := slug.BuildPath("bookshop", strings.ToLower(shop.StateCode()))
	p = slug.BuildPath(p, slug.Make(shop.City))
	return slug.BuildPath(p, slug.Make(shop.Name))
}
