package validation

import (
	"context"
	"fmt"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
	"github.com/Zhima-Mochi/paychain/internal/observability"
	"github.com/Zhima-Mochi/paychain/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	stageSpanPrefix = "Stage."
	// maxLinkHops bounds the cycle walk in SetNext.
	maxLinkHops = 1 << 16
)

// Dependencies are shared by every stage of a chain.
type Dependencies struct {
	Reporter Reporter
	Pacer    Pacer
	IDs      IDGenerator
	Tel      observability.Observability
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Reporter == nil {
		d.Reporter = NopReporter()
	}
	if d.Pacer == nil {
		d.Pacer = NopPacer()
	}
	return d
}

// checkFunc runs one stage's checks. It reports through s.say and returns the decisions taken.
type checkFunc func(ctx context.Context, p *dompay.Payment) []dompay.Decision

// stage holds what every handler shares: the non-owning successor link, the
// dispatch step and the observability hooks.
type stage struct {
	name    string
	owner   dompay.Handler
	next    dompay.Handler
	sealed  bool
	doneMsg MessageKey
	doneArg []any

	reporter    Reporter
	pacer       Pacer
	log         observability.Logger
	tracer      observability.Tracer
	invocations observability.BoundCounter // payment_stage_invocations_total{handler}
	decisions   observability.Counter      // payment_check_decisions_total{check,verdict}
	completions observability.Counter      // payment_traversals_completed_total{tail}
}

func newStage(name string, doneMsg MessageKey, deps Dependencies) stage {
	deps = deps.withDefaults()

	baseLog := observability.NopLogger()
	tracer := observability.NopTracer()
	metricsProvider := observability.NopMetrics()
	if deps.Tel != nil {
		baseLog = deps.Tel.Logger()
		tracer = deps.Tel.Tracer()
		metricsProvider = deps.Tel.Metrics()
	}

	return stage{
		name:        name,
		doneMsg:     doneMsg,
		reporter:    deps.Reporter,
		pacer:       deps.Pacer,
		log:         baseLog.With(observability.F("component", "payment_chain")),
		tracer:      tracer,
		invocations: metricsProvider.Counter(observability.MStageInvocations).Bind(observability.L("handler", name)),
		decisions:   metricsProvider.Counter(observability.MCheckDecisions),
		completions: metricsProvider.Counter(observability.MTraversalsComplete),
	}
}

func (s *stage) base() *stage { return s }

func (s *stage) Name() string { return s.name }

func (s *stage) Next() dompay.Handler { return s.next }

// SetNext links next as the successor; nil unlinks. Self links, links that
// would close a cycle and changes to a sealed chain are rejected.
func (s *stage) SetNext(next dompay.Handler) error {
	if s.sealed {
		return fmt.Errorf("%w: cannot relink %s", dompay.ErrSealed, s.name)
	}
	if next == nil {
		s.next = nil
		return nil
	}
	if next == s.owner {
		return fmt.Errorf("%w: %s", dompay.ErrSelfLink, s.name)
	}
	if dompay.Reaches(next, s.owner, maxLinkHops) {
		return fmt.Errorf("%w: linking %s to %s", dompay.ErrCycle, s.name, next.Name())
	}
	s.next = next
	return nil
}

func (s *stage) seal() { s.sealed = true }

func (s *stage) unlink() {
	s.sealed = false
	s.next = nil
}

// say emits one diagnostic line and then paces.
func (s *stage) say(ctx context.Context, key MessageKey, args ...any) {
	s.reporter.Report(ctx, key, args...)
	s.pacer.Pace(ctx)
}

// run is the body of every Handle: enter the traversal, check, record, then
// forward or complete. Decisions never affect the forwarding step.
func (s *stage) run(ctx context.Context, p *dompay.Payment, check checkFunc) error {
	if p == nil {
		return dompay.ErrNilPayment
	}

	ctx, report := ensureReport(ctx, p)
	position, err := report.enter(s.owner, s.name)
	if err != nil {
		logctx.FromOr(ctx, s.log).Error("chain_cycle_detected",
			observability.F("handler", s.name),
			observability.F("error", err),
		)
		return err
	}

	stageCtx, span := s.tracer.Start(ctx, stageSpanPrefix+s.name,
		attribute.String("payment.id", p.ID),
		attribute.String("stage.handler", s.name),
		attribute.Int("stage.position", position),
	)
	stageCtx, logger := logctx.Enrich(stageCtx, s.log,
		observability.F("handler", s.name),
		observability.F("position", position),
	)
	if s.invocations != nil {
		s.invocations.Add(1)
	}

	decisions := check(stageCtx, p)
	report.record(position, decisions)

	flagged := 0
	for _, d := range decisions {
		if d.IsFlagged() {
			flagged++
		}
		if s.decisions != nil {
			s.decisions.Add(1,
				observability.L("check", d.Check),
				observability.L("verdict", string(d.Verdict)),
			)
		}
		span.AddEvent("check."+d.Check, trace.WithAttributes(
			attribute.String("check.verdict", string(d.Verdict)),
			attribute.String("check.reason", d.Reason),
		))
	}

	fields := []observability.Field{
		observability.F("payment_id", p.ID),
		observability.F("decisions", len(decisions)),
		observability.F("flagged", flagged),
	}
	for _, d := range decisions {
		fields = append(fields, observability.F("check_"+d.Check, string(d.Verdict)))
	}
	logger.Info("stage_done", fields...)

	span.SetStatus(codes.Ok, "OK")
	span.End()

	// The successor gets the traversal context, not this stage's span or fields.
	if s.next != nil {
		return s.next.Handle(ctx, p)
	}

	s.say(stageCtx, s.doneMsg, s.doneArg...)
	report.complete(s.name)
	if s.completions != nil {
		s.completions.Add(1, observability.L("tail", s.name))
	}
	logger.Info("chain_completed",
		observability.F("payment_id", p.ID),
		observability.F("traversal_id", report.ID),
		observability.F("stages", len(report.Stages)),
		observability.F("flagged", len(report.Flags())),
	)
	return nil
}
