package batch

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the batch counters on a private registry so several runs in
// one process do not collide.
type Metrics struct {
	reg       *prometheus.Registry
	instances prometheus.Counter
	errors    prometheus.Counter
	seconds   prometheus.Histogram
	weight    *prometheus.GaugeVec
}

// NewMetrics registers the sdgen_* collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		instances: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdgen_instances_total",
			Help: "Instances written.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sdgen_generate_errors_total",
			Help: "Jobs that failed to generate or write.",
		}),
		seconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sdgen_generate_seconds",
			Help:    "Time to generate and write one instance.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		weight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sdgen_target_weight",
			Help: "Target weight w per matrix size n.",
		}, []string{"n"}),
	}
	m.reg.MustRegister(m.instances, m.errors, m.seconds, m.weight)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// WriteTextfile dumps the registry in the text exposition format, atomically,
// for a node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func (m *Metrics) observe(n, w int, seconds float64) {
	if m == nil {
		return
	}
	m.instances.Inc()
	m.seconds.Observe(seconds)
	m.weight.WithLabelValues(strconv.Itoa(n)).Set(float64(w))
}

func (m *Metrics) fail() {
	if m == nil {
		return
	}
	m.errors.Inc()
}
