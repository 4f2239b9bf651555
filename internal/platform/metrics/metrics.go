package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnmatchedPath is the path label for requests that matched no route.
const UnmatchedPath = "other"

// Collector exposes route sequencing counters to Prometheus.
// It satisfies services.RouteObserver.
type Collector struct {
	reorderCommitted  prometheus.Counter
	reorderCancelled  prometheus.Counter
	dragRejected      prometheus.Counter
	storeLoadDegraded prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// NewCollector creates the collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		reorderCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_reorders_committed_total",
			Help: "Total number of confirmed route reorders",
		}),
		reorderCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_reorders_cancelled_total",
			Help: "Total number of discarded route reorders",
		}),
		dragRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_reorder_drags_rejected_total",
			Help: "Total number of drag-end events referencing stops outside the route",
		}),
		storeLoadDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_store_load_degraded_total",
			Help: "Total number of route loads that fell back to defaults because the store failed",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "route_http_requests_total",
			Help: "Total number of HTTP requests by path and status",
		}, []string{"path", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "route_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}

	reg.MustRegister(
		c.reorderCommitted,
		c.reorderCancelled,
		c.dragRejected,
		c.storeLoadDegraded,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) ReorderCommitted()  { c.reorderCommitted.Inc() }
func (c *Collector) ReorderCancelled()  { c.reorderCancelled.Inc() }
func (c *Collector) DragRejected()      { c.dragRejected.Inc() }
func (c *Collector) StoreLoadDegraded() { c.storeLoadDegraded.Inc() }

// ObserveRequest records one served HTTP request. path must be a route pattern, not a raw URL path.
func (c *Collector) ObserveRequest(path string, status int, dur time.Duration) {
	c.httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(path).Observe(dur.Seconds())
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
