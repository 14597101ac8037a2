package prometrics

import (
	"sync"

	"github.com/Zhima-Mochi/paychain/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry creates Prometheus-backed instruments behind the observability port.
type Registry interface {
	Counter(name string, help string, labelKeys ...string) observability.Counter
	Histogram(name string, help string, buckets []float64, labelKeys ...string) observability.Histogram
}

type registry struct {
	mu         sync.Mutex
	counters   map[string]*counter
	histograms map[string]*histogram
	namespace  string
	subsystem  string
	reg        prometheus.Registerer
}

// New returns a Registry registering collectors on reg, or on the default registerer when nil.
func New(namespace, subsystem string, reg prometheus.Registerer) Registry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &registry{
		counters:   make(map[string]*counter),
		histograms: make(map[string]*histogram),
		namespace:  namespace,
		subsystem:  subsystem,
		reg:        reg,
	}
}

// Counter registers name once; later calls return the same instrument.
func (r *registry) Counter(name string, help string, labelKeys ...string) observability.Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.counters[name]; ok {
		return c
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace, Subsystem: r.subsystem, Name: name, Help: help,
	}, labelKeys)
	r.reg.MustRegister(vec)
	c := &counter{vec: vec, keys: labelKeys}
	r.counters[name] = c
	return c
}

// Histogram registers name once; nil buckets mean prometheus.DefBuckets.
func (r *registry) Histogram(name string, help string, buckets []float64, labelKeys ...string) observability.Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.histograms[name]; ok {
		return h
	}
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace, Subsystem: r.subsystem, Name: name, Help: help, Buckets: buckets,
	}, labelKeys)
	r.reg.MustRegister(vec)
	h := &histogram{vec: vec, keys: labelKeys}
	r.histograms[name] = h
	return h
}

type counter struct {
	vec  *prometheus.CounterVec
	keys []string
}

func (c *counter) Add(d float64, labels ...observability.Label) {
	c.vec.WithLabelValues(labelValues(c.keys, labels)...).Add(d)
}

// Bind resolves the child series once so hot paths skip the label lookup.
func (c *counter) Bind(labels ...observability.Label) observability.BoundCounter {
	return c.vec.WithLabelValues(labelValues(c.keys, labels)...)
}

type histogram struct {
	vec  *prometheus.HistogramVec
	keys []string
}

func (h *histogram) Observe(v float64, labels ...observability.Label) {
	h.vec.WithLabelValues(labelValues(h.keys, labels)...).Observe(v)
}

func (h *histogram) Bind(labels ...observability.Label) observability.BoundHistogram {
	return h.vec.WithLabelValues(labelValues(h.keys, labels)...)
}

// labelValues orders labels by the registered keys. Missing labels become ""
// and unregistered ones are dropped, so a caller mistake never panics.
func labelValues(keys []string, labels []observability.Label) []string {
	values := make([]string, len(keys))
	for _, l := range labels {
		for i, k := range keys {
			if k == l.Key {
				values[i] = l.Value
				break
			}
		}
	}
	return values
}
