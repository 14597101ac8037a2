package validation

import (
	"context"
	"strconv"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
	"github.com/Zhima-Mochi/paychain/internal/observability"
	"github.com/Zhima-Mochi/paychain/internal/observability/logctx"
)

const (
	HandlerSuspiciousActivity = "suspicious_activity"

	DefaultSuspiciousDays = 365
	// DefaultDaysSinceLastPayment is what the history stub answers for every sender.
	DefaultDaysSinceLastPayment = 5
)

// SuspiciousActivityHandler flags senders whose previous payment is at least
// maxDays old. The flag is informational; the payment is always forwarded.
type SuspiciousActivityHandler struct {
	stage
	maxDays int
	history HistoryProvider
}

// NewSuspiciousActivityHandler falls back to StaticHistory(DefaultDaysSinceLastPayment) when history is nil.
func NewSuspiciousActivityHandler(deps Dependencies, maxDays int, history HistoryProvider) *SuspiciousActivityHandler {
	if history == nil {
		history = StaticHistory(DefaultDaysSinceLastPayment)
	}
	h := &SuspiciousActivityHandler{
		stage:   newStage(HandlerSuspiciousActivity, MsgSuspiciousDone, deps),
		maxDays: maxDays,
		history: history,
	}
	h.owner = h
	return h
}

func (h *SuspiciousActivityHandler) Handle(ctx context.Context, p *dompay.Payment) error {
	return h.run(ctx, p, h.check)
}

func (h *SuspiciousActivityHandler) check(ctx context.Context, p *dompay.Payment) []dompay.Decision {
	h.say(ctx, MsgHistoryChecking)

	days, err := h.history.DaysSinceLastPayment(ctx, p.Sender)
	if err != nil {
		logctx.FromOr(ctx, h.log).Warn("payment_history_unavailable",
			observability.F("sender", p.Sender),
			observability.F("error", err),
		)
		h.say(ctx, MsgHistoryUnavailable)
		return []dompay.Decision{dompay.Skipped(dompay.CheckRecentActivity, "history_unavailable")}
	}

	if days < h.maxDays {
		h.say(ctx, MsgHistoryOK)
		return []dompay.Decision{dompay.Approved(dompay.CheckRecentActivity)}
	}

	h.say(ctx, MsgSuspiciousDetected)
	return []dompay.Decision{dompay.Flagged(dompay.CheckRecentActivity, "days_since_last_payment="+strconv.Itoa(days))}
}
