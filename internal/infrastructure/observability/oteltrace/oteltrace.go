package oteltrace

import (
	"context"

	"github.com/Zhima-Mochi/paychain/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New returns a tracer resolved from the global provider.
func New(name string) observability.Tracer {
	if name == "" {
		name = "paychain"
	}
	return &tracer{t: otel.Tracer(name)}
}

// FromProvider returns a tracer bound to tp instead of the global provider.
func FromProvider(tp trace.TracerProvider, name string) observability.Tracer {
	if tp == nil {
		return New(name)
	}
	if name == "" {
		name = "paychain"
	}
	return &tracer{t: tp.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Install sets an always-sampling SDK provider as the global one so spans carry
// real trace and span IDs into the logs. No exporter is attached; callers add
// span processors through opts.
func Install(opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = append([]sdktrace.TracerProviderOption{sdktrace.WithSampler(sdktrace.AlwaysSample())}, opts...)
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}
