package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records response codes and latency per endpoint
type Metrics struct {
	responses *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the client metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lastman",
			Subsystem: "api",
			Name:      "responses_total",
			Help:      "LMS API responses by endpoint and return code.",
		}, []string{"endpoint", "return_code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lastman",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "LMS API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.responses, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(endpoint string, code ReturnCode, seconds float64) {
	if m == nil {
		return
	}
	if !code.Known() {
		code = codeUnknown
	}
	m.responses.WithLabelValues(endpoint, string(code)).Inc()
	m.duration.WithLabelValues(endpoint).Observe(seconds)
}
