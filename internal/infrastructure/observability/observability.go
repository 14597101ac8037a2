package observability

import (
	"context"
	"errors"

	"github.com/Zhima-Mochi/paychain/internal/observability"
)

// Closer flushes or shuts down one backend when the process exits.
type Closer func(ctx context.Context) error

// Provider bundles the tracer, logger and metric instruments behind the
// observability port and remembers how to flush them.
type Provider struct {
	tracer  observability.Tracer
	logger  observability.Logger
	metrics observability.Metrics
	closers []Closer
}

type registeredMetrics struct {
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

func (m *registeredMetrics) Counter(name observability.MetricKey) observability.Counter {
	if c, ok := m.counters[name]; ok && c != nil {
		return c
	}
	return observability.NopCounter()
}

func (m *registeredMetrics) Histogram(name observability.MetricKey) observability.Histogram {
	if h, ok := m.histograms[name]; ok && h != nil {
		return h
	}
	return observability.NopHistogram()
}

// New assembles a Provider. Missing pieces fall back to nop implementations;
// unknown metric keys resolve to nop instruments.
func New(
	tracer observability.Tracer,
	logger observability.Logger,
	counters map[observability.MetricKey]observability.Counter,
	histograms map[observability.MetricKey]observability.Histogram,
	closers ...Closer,
) *Provider {
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	var metrics observability.Metrics = observability.NopMetrics()
	if len(counters) > 0 || len(histograms) > 0 {
		metrics = &registeredMetrics{
			counters:   compact(counters),
			histograms: compact(histograms),
		}
	}

	return &Provider{
		tracer:  tracer,
		logger:  logger,
		metrics: metrics,
		closers: closers,
	}
}

func compact[V comparable](in map[observability.MetricKey]V) map[observability.MetricKey]V {
	var zero V
	out := make(map[observability.MetricKey]V, len(in))
	for k, v := range in {
		if v != zero {
			out[k] = v
		}
	}
	return out
}

func (p *Provider) Tracer() observability.Tracer { return p.tracer }

func (p *Provider) Logger() observability.Logger { return p.logger }

func (p *Provider) Metrics() observability.Metrics { return p.metrics }

// Shutdown runs every closer in reverse registration order and joins their errors.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if p.closers[i] == nil {
			continue
		}
		if err := p.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
