// Package metrics holds Prometheus instruments that are used across the
// directory service.  All collectors are registered with the global
// registry, so importing this package in main.go is enough to expose them
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoadedShops = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "directory_loaded_shops",
			Help: "Number of bookshops currently held in the in-memory collection.",
		})

	ShopReloadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_shop_reload_total",
			Help: "Cumulative number of successful collection reloads.",
		})

	ShopReloadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_shop_reload_errors_total",
			Help: "Cumulative number of failed collection reloads.",
		})

	SlugCollisions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "directory_slug_collisions",
			Help: "Distinct name slugs shared by more than one bookshop in the last load.",
		})

	ResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_resolve_total",
			Help: "Resolution outcomes by result (matched, none, ambiguous).",
		},
		[]string{"result"})

	RedirectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_canonical_redirects_total",
			Help: "Permanent redirects issued to the canonical URL form.",
		})
)

func init() {
	prometheus.MustRegister(
		LoadedShops,
		ShopReloadTotal,
		ShopReloadErrorsTotal,
		SlugCollisions,
		ResolveTotal,
		RedirectsTotal,
	)
}
