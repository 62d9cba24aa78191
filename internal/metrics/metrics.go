// Package metrics collects and exposes Prometheus counters for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts domain events. Handlers record into it on success.
type Collector struct {
	registry      *prometheus.Registry
	urlsShortened prometheus.Counter
	redirects     prometheus.Counter
	registrations prometheus.Counter
	logins        prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		urlsShortened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkcut_urls_shortened_total",
			Help: "Total number of successful shorten operations.",
		}),
		redirects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkcut_redirects_total",
			Help: "Total number of resolved short codes.",
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkcut_registrations_total",
			Help: "Total number of registered users.",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkcut_logins_total",
			Help: "Total number of successful logins.",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		c.urlsShortened,
		c.redirects,
		c.registrations,
		c.logins,
	)

	return c
}

func (c *Collector) RecordURLShortened() { c.urlsShortened.Inc() }
func (c *Collector) RecordRedirect()     { c.redirects.Inc() }
func (c *Collector) RecordRegistration() { c.registrations.Inc() }
func (c *Collector) RecordLogin()        { c.logins.Inc() }

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
