package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "icebreaker"

// Draw results.
const (
	DrawServed    = "served"
	DrawExhausted = "exhausted"
)

// Collectors groups the Prometheus series the API exports on /metrics.
type Collectors struct {
	QuestionDraws *prometheus.CounterVec
	Dispositions  *prometheus.CounterVec
	TeamResets    prometheus.Counter
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	RateLimited   prometheus.Counter
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in production
// and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)
	return &Collectors{
		QuestionDraws: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_draws_total",
			Help:      "Random question draws by outcome.",
		}, []string{"result"}),
		Dispositions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_dispositions_total",
			Help:      "Questions marked used or skipped.",
		}, []string{"kind"}),
		TeamResets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_resets_total",
			Help:      "Team question pool resets.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
}

// ObserveDraw records the outcome of one selector call. Safe on a nil receiver.
func (c *Collectors) ObserveDraw(result string) {
	if c == nil {
		return
	}
	c.QuestionDraws.WithLabelValues(result).Inc()
}

// ObserveDisposition records a used/skipped mark. Safe on a nil receiver.
func (c *Collectors) ObserveDisposition(kind string) {
	if c == nil {
		return
	}
	c.Dispositions.WithLabelValues(kind).Inc()
}

// ObserveReset records a team reset. Safe on a nil receiver.
func (c *Collectors) ObserveReset() {
	if c == nil {
		return
	}
	c.TeamResets.Inc()
}

// ObserveRateLimited records a request rejected by the rate limiter. Safe on a nil receiver.
func (c *Collectors) ObserveRateLimited() {
	if c == nil {
		return
	}
	c.RateLimited.Inc()
}

// ObserveRequest records one served HTTP request. Safe on a nil receiver.
func (c *Collectors) ObserveRequest(method, route string, status int, seconds float64) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}
