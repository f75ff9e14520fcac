// Package metrics holds Prometheus instruments that are used across the
// platform.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveTenants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_tenants",
			Help: "Number of tenants currently loaded in memory.",
		})

	TenantLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_total",
			Help: "Cumulative number of tenants successfully loaded.",
		})

	TenantLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_errors_total",
			Help: "Cumulative number of tenant load errors.",
		})

	TenantEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_evict_total",
			Help: "Cumulative number of tenants evicted from the cache.",
		})

	ResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "host_resolve_total",
			Help: "Host resolutions by outcome (canonical, subdomain, custom_domain, reserved, unknown, invalid).",
		},
		[]string{"outcome"})

	RedirectTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "host_redirect_total",
			Help: "Redirects issued by the resolution layer, by reason (reserved, custom_domain, retired).",
		},
		[]string{"reason"})

	AnalyticEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytic_events_total",
			Help: "Analytic rows recorded, by kind (post, page).",
		},
		[]string{"kind"})
)

func init() {
	prometheus.MustRegister(
		ActiveTenants,
		TenantLoadTotal,
		TenantLoadErrorsTotal,
		TenantEvictTotal,
		ResolveTotal,
		RedirectTotal,
		AnalyticEventsTotal,
	)
}
