package validation

import (
	"context"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
	"github.com/Zhima-Mochi/paychain/internal/observability"
	"github.com/Zhima-Mochi/paychain/internal/observability/logctx"
	"github.com/shopspring/decimal"
)

const HandlerBigMoney = "big_money"

// DefaultBigMoneyThreshold is the amount above which financial monitoring runs.
var DefaultBigMoneyThreshold = decimal.NewFromInt(5000)

// BigMoneyHandler runs financial monitoring for payments strictly above the
// threshold. The monitoring result is recorded and logged but is not wired to
// any branching: the payment is forwarded either way.
type BigMoneyHandler struct {
	stage
	threshold decimal.Decimal
	monitor   Monitor
}

// NewBigMoneyHandler accepts a nil monitor; payments above the threshold then
// get a skipped monitoring decision.
func NewBigMoneyHandler(deps Dependencies, threshold decimal.Decimal, monitor Monitor) *BigMoneyHandler {
	h := &BigMoneyHandler{
		stage:     newStage(HandlerBigMoney, MsgMonitoringDone, deps),
		threshold: threshold,
		monitor:   monitor,
	}
	h.doneArg = []any{threshold.String()}
	h.owner = h
	return h
}

func (h *BigMoneyHandler) Threshold() decimal.Decimal { return h.threshold }

func (h *BigMoneyHandler) Handle(ctx context.Context, p *dompay.Payment) error {
	return h.run(ctx, p, h.check)
}

func (h *BigMoneyHandler) check(ctx context.Context, p *dompay.Payment) []dompay.Decision {
	if !p.Amount.GreaterThan(h.threshold) {
		return []dompay.Decision{dompay.Skipped(dompay.CheckFinancialMonitoring, "below_threshold")}
	}

	h.say(ctx, MsgMonitoringStarted)
	if h.monitor == nil {
		return []dompay.Decision{dompay.Skipped(dompay.CheckFinancialMonitoring, "monitor_unconfigured")}
	}

	passed, err := h.monitor.Screen(ctx, p)
	if err != nil {
		logctx.FromOr(ctx, h.log).Warn("financial_monitoring_unavailable",
			observability.F("amount", p.Amount.String()),
			observability.F("error", err),
		)
		h.say(ctx, MsgMonitoringUnavailable)
		return []dompay.Decision{dompay.Skipped(dompay.CheckFinancialMonitoring, "monitoring_unavailable")}
	}
	logctx.FromOr(ctx, h.log).Info("financial_monitoring_screened",
		observability.F("amount", p.Amount.String()),
		observability.F("threshold", h.threshold.String()),
		observability.F("passed", passed),
	)
	decision := dompay.DecisionOf(dompay.CheckFinancialMonitoring, passed, "monitoring_attention")
	if decision.IsFlagged() {
		h.say(ctx, MsgMonitoringFlagged)
	}
	return []dompay.Decision{decision}
}
