// internal/redirect/redirect.go
//
// Serve / redirect / not-found decision for resolved detail requests.
//
// Context
// -------
// Once the resolver has spoken, this package decides what the HTTP layer
// does: serve the page, 308 to the canonical URL, render a not-found
// page, or render a disambiguation list.  Disambiguation is a distinct
// outcome, never folded into not-found — collapsing it would turn a
// recoverable choice into a dead end and leak link equity.
//
// Redirects use 308 Permanent Redirect, matching the HTTPS-enforcement
// middleware, so search engines consolidate onto the canonical form.

package redirect

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/indiebookshop/directory/internal/resolver"
)

// Action enumerates what the routing layer should do.
type Action int

const (
	NotFound Action = iota
	Serve
	Redirect
	Disambiguate
)

func (a Action) String() string {
	switch a {
	case Serve:
		return "serve"
	case Redirect:
		return "redirect"
	case Disambiguate:
		return "disambiguate"
	default:
		return "not_found"
	}
}

// StatusCode is the HTTP status used for canonical redirects.
const StatusCode = http.StatusPermanentRedirect

// Decision is the outcome for one request.  Target is set only for
// Redirect.
type Decision struct {
	Action Action
	Target string
}

// Decide compares the requested path with the canonical URL for the
// resolved shop.  requestedPath is the raw r.URL.Path; canonicalURL is
// absolute (from canonical.URL).
func Decide(requestedPath string, res resolver.Result, canonicalURL string) Decision {
	switch res.Outcome {
	case resolver.NoMatch:
		return Decision{Action: NotFound}
	case resolver.Ambiguous:
		return Decision{Action: Disambiguate}
	}

	if pathsEqual(requestedPath, canonicalURL) {
		return Decision{Action: Serve}
	}
	return Decision{Action: Redirect, Target: canonicalURL}
}

// pathsEqual compares the request path against the path component of the
// canonical URL, ignoring only a trailing slash.  The comparison is
// case-sensitive on purpose: a legacy numeric URL, a richer state/city
// shape, or an uppercased path all compare unequal to the short lowercase
// canonical form and therefore redirect.
func pathsEqual(requested, canonicalURL string) bool {
	canonicalPath := canonicalURL
	if u, err := url.Parse(canonicalURL); err == nil && u.Path != "" {
		canonicalPath = u.Path
	}
	return strings.TrimRight(requested, "/") == strings.TrimRight(canonicalPath, "/")
}
