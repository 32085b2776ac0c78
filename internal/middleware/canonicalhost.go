// internal/middleware/canonicalhost.go
//
// Host canonicalization.
//
// The directory publishes exactly one public origin (site.base_url), so
// traffic arriving on a www variant or an aliased domain is folded onto
// the canonical host with a 308.  This is the host-level counterpart of
// the path-level canonical redirect the bookshop handler issues; both
// use the permanent semantic so search engines consolidate.

package middleware

import "net/http"

// CanonicalHost redirects requests whose Host differs from host.  An
// empty host disables the middleware.  localhost is always exempt so
// development traffic is never bounced.
func CanonicalHost(host string, h http.Handler) http.Handler {
	if host == "" {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := stripPort(r.Host)
		if got == host || got == "localhost" {
			h.ServeHTTP(w, r)
			return
		}

		scheme := "https"
		if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") != "https" {
			scheme = "http"
		}
		target := scheme + "://" + host + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})
}
