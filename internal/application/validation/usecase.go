package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/paychain/internal/application"
	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
	"github.com/Zhima-Mochi/paychain/internal/observability"
	"github.com/Zhima-Mochi/paychain/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	validationService     = "payment-validation"
	useCaseValidate       = "payment.validate"
	validateSpanName      = "ValidatePayment"
	spanPrefix            = "UC."
	statusOK              = "OK"
	statusOKWithFlags     = "OK_WITH_FLAGS"
	statusPaymentRequired = "PAYMENT_REQUIRED"
	statusInvalid         = "VALIDATION_FAILED"
	statusChainFailed     = "CHAIN_FAILED"
	statusIncomplete      = "CHAIN_INCOMPLETE"
)

var ErrIncomplete = errors.New("validation: traversal did not reach the tail")

var _ application.UseCase[ValidatePaymentInput, *ValidatePaymentResult] = (*ValidatePaymentUseCase)(nil)

type ValidatePaymentInput struct {
	Payment *dompay.Payment
}

type ValidatePaymentResult struct {
	TraversalID string
	Completed   bool
	Tail        string
	Stages      []StageReport
	Flags       []dompay.Decision
}

// ValidatePaymentUseCase runs one payment through a chain with observability hooks.
type ValidatePaymentUseCase struct {
	chain  *Chain
	strict bool

	tracer       observability.Tracer
	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

// NewValidatePaymentUseCase wires the chain. With strict set, payments failing
// Payment.Validate are rejected before reaching the chain; by default nothing is.
func NewValidatePaymentUseCase(chain *Chain, tel observability.Observability, strict bool) *ValidatePaymentUseCase {
	baseLog := observability.NopLogger()
	tracer := observability.NopTracer()
	metricsProvider := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		tracer = tel.Tracer()
		metricsProvider = tel.Metrics()
	}

	return &ValidatePaymentUseCase{
		chain:        chain,
		strict:       strict,
		tracer:       tracer,
		log:          baseLog.With(observability.F("service", validationService)),
		reqCounter:   metricsProvider.Counter(observability.MUsecaseRequests),
		durHistogram: metricsProvider.Histogram(observability.MUsecaseDuration),
	}
}

// Execute sends the payment through every stage and summarises what they recorded.
func (uc *ValidatePaymentUseCase) Execute(ctx context.Context, cmd ValidatePaymentInput) (_ *ValidatePaymentResult, err error) {
	p := cmd.Payment
	logger := logctx.FromOr(ctx, uc.log).With(observability.F("use_case", useCaseValidate))

	attrs := []attribute.KeyValue{attribute.String("use_case", useCaseValidate)}
	if p != nil {
		logger = logger.With(
			observability.F("payment_id", p.ID),
			observability.F("amount", p.Amount.String()),
			observability.F("currency", p.Currency),
		)
		attrs = append(attrs,
			attribute.String("payment.id", p.ID),
			attribute.String("payment.currency", p.Currency),
			attribute.String("payment.amount", p.Amount.String()),
		)
	}

	ctx, span := uc.tracer.Start(ctx, spanPrefix+validateSpanName, attrs...)
	ctx = logctx.With(ctx, logger)
	start := time.Now()
	outcome, statusText := "success", statusOK
	var report *Report

	defer func() {
		lat := time.Since(start).Seconds()

		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		if uc.reqCounter != nil {
			uc.reqCounter.Add(1,
				observability.L("use_case", useCaseValidate),
				observability.L("outcome", outcome),
			)
		}
		if uc.durHistogram != nil {
			uc.durHistogram.Observe(lat,
				observability.L("use_case", useCaseValidate),
			)
		}

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if report != nil {
			fields = append(fields,
				observability.F("traversal_id", report.ID),
				observability.F("stages", report.Handlers()),
				observability.F("traversal_state", report.State.String()),
			)
			for _, f := range report.Flags() {
				fields = append(fields, observability.F("flag_"+f.Check, f.Reason))
			}
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	if p == nil {
		outcome, statusText = "error", statusPaymentRequired
		return nil, dompay.ErrNilPayment
	}
	if uc.strict {
		if verr := p.Validate(); verr != nil {
			outcome, statusText = "error", statusInvalid
			return nil, fmt.Errorf("validation: %w", verr)
		}
	}

	report, err = uc.chain.Handle(ctx, p)
	if err != nil {
		outcome, statusText = "error", statusChainFailed
		return resultFrom(report), fmt.Errorf("validation: chain: %w", err)
	}
	if !report.Completed() {
		outcome, statusText = "error", statusIncomplete
		return resultFrom(report), ErrIncomplete
	}

	if flags := report.Flags(); len(flags) > 0 {
		statusText = statusOKWithFlags
		span.AddEvent("payment.flagged", trace.WithAttributes(attribute.Int("flags", len(flags))))
	}
	span.SetAttributes(attribute.String("chain.tail", report.Tail))

	return resultFrom(report), nil
}

func resultFrom(r *Report) *ValidatePaymentResult {
	if r == nil {
		return nil
	}
	return &ValidatePaymentResult{
		TraversalID: r.ID,
		Completed:   r.Completed(),
		Tail:        r.Tail,
		Stages:      append([]StageReport(nil), r.Stages...),
		Flags:       r.Flags(),
	}
}
