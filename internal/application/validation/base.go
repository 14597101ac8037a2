package validation

import (
	"context"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
)

const HandlerBase = "base"

// BaseHandler announces the transfer and checks requisites and funds. Both
// checks only report; a failed check never stops the payment.
type BaseHandler struct {
	stage
	requisites Predicate
	funds      Predicate
}

// NewBaseHandler wires the requisites and funds predicates; nil ones fall back to AlwaysTrue.
func NewBaseHandler(deps Dependencies, requisites, funds Predicate) *BaseHandler {
	if requisites == nil {
		requisites = AlwaysTrue
	}
	if funds == nil {
		funds = AlwaysTrue
	}
	h := &BaseHandler{
		stage:      newStage(HandlerBase, MsgBaseDone, deps),
		requisites: requisites,
		funds:      funds,
	}
	h.owner = h
	return h
}

func (h *BaseHandler) Handle(ctx context.Context, p *dompay.Payment) error {
	return h.run(ctx, p, h.check)
}

func (h *BaseHandler) check(ctx context.Context, p *dompay.Payment) []dompay.Decision {
	h.say(ctx, MsgTransferInitiated, p.Sender, p.Receiver)

	h.say(ctx, MsgRequisitesChecking)
	requisites := dompay.DecisionOf(dompay.CheckRequisites, h.requisites(ctx, p), "requisites_invalid")
	if requisites.IsFlagged() {
		h.say(ctx, MsgRequisitesInvalid)
	}

	h.say(ctx, MsgFundsChecking)
	funds := dompay.DecisionOf(dompay.CheckFunds, h.funds(ctx, p), "insufficient_funds")
	if funds.IsFlagged() {
		h.say(ctx, MsgFundsInsufficient)
	}

	return []dompay.Decision{requisites, funds}
}
