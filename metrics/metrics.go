// Package metrics instruments the request lifecycle with Prometheus.
//
// The recorder plugs into the transport hooks, so wiring it up costs one
// client option and no changes at call sites.
package metrics

import (
	"strconv"
	"time"

	"github.com/GriffinCanCode/apiclient/errs"
	"github.com/GriffinCanCode/apiclient/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds all client metrics.
type Recorder struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	FailuresTotal   *prometheus.CounterVec
	InFlight        prometheus.Gauge
}

// NewRecorder creates a metrics recorder registered on reg. A nil reg uses
// the default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apiclient_requests_total",
				Help: "Total number of requests issued",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "apiclient_request_duration_seconds",
				Help:    "Request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		FailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apiclient_failures_total",
				Help: "Total number of failed calls by error kind",
			},
			[]string{"kind"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "apiclient_requests_in_flight",
				Help: "Number of requests currently executing",
			},
		),
	}
}

// RecordRequest records one completed exchange.
func (r *Recorder) RecordRequest(method string, status int, duration time.Duration) {
	r.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordFailure counts a failed call under its error kind.
func (r *Recorder) RecordFailure(err error) {
	kind := errs.Kind(err)
	if kind == "" {
		return
	}
	r.FailuresTotal.WithLabelValues(kind).Inc()
}

// Hooks adapts the recorder onto the transport lifecycle. The hooks only
// observe; they never substitute the request.
func (r *Recorder) Hooks() transport.Hooks {
	return transport.Hooks{
		OnRequestPrepare: func(req *transport.Request) *transport.Request {
			if req != nil {
				r.InFlight.Inc()
			}
			return nil
		},
		OnResponseObserved: func(resp *transport.Response) {
			r.InFlight.Dec()
			if resp != nil {
				r.RecordRequest(resp.Method, resp.StatusCode, resp.Duration)
			}
		},
		OnError: func(err error) {
			r.RecordFailure(err)
		},
	}
}
