package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	deviceSyncs     *prometheus.CounterVec
	syncedPunches   prometheus.Counter
}

// New registers the collectors on a private registry so tests can create as many as they like.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hradmin",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hradmin",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		deviceSyncs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hradmin",
			Name:      "device_sync_total",
			Help:      "Device punch pulls by result.",
		}, []string{"result"}),
		syncedPunches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hradmin",
			Name:      "device_punches_inserted_total",
			Help:      "Punches inserted by device sync.",
		}),
	}
}

func (c *Collector) Record(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordSync(result string, inserted int) {
	if c == nil {
		return
	}
	c.deviceSyncs.WithLabelValues(result).Inc()
	if inserted > 0 {
		c.syncedPunches.Add(float64(inserted))
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}
