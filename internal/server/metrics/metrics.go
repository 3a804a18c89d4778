// Package metrics exposes the portal's Prometheus collectors. All methods
// are safe on a nil *Registry so collaborators can treat metrics as optional.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docportal"

type Registry struct {
	reg         *prometheus.Registry
	remoteCalls *prometheus.CounterVec
	uploads     *prometheus.CounterVec
	uploadTime  prometheus.Histogram
	logins      *prometheus.CounterVec
}

// New builds a registry with the portal collectors plus the Go runtime and
// process collectors.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "odoo_calls_total",
			Help:      "XML-RPC calls to Odoo by model, method and outcome.",
		}, []string{"model", "method", "outcome"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Provisioning runs by outcome.",
		}, []string{"outcome"}),
		uploadTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Wall time of provisioning runs.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Portal login attempts by result.",
		}, []string{"result"}),
	}

	r.reg.MustRegister(
		r.remoteCalls, r.uploads, r.uploadTime, r.logins,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) ObserveRemoteCall(model, method string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.remoteCalls.WithLabelValues(model, method, outcome).Inc()
}

func (r *Registry) ObserveUpload(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.uploads.WithLabelValues(outcome).Inc()
	r.uploadTime.Observe(d.Seconds())
}

func (r *Registry) ObserveLogin(ok bool) {
	if r == nil {
		return
	}
	result := "rejected"
	if ok {
		result = "accepted"
	}
	r.logins.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
