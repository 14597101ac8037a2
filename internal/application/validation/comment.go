package validation

import (
	"context"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
)

const HandlerComment = "comment"

// CommentHandler notes whether the payment carries a comment. In the default
// assembly it is the tail, so its completion message closes the transaction.
type CommentHandler struct {
	stage
}

func NewCommentHandler(deps Dependencies) *CommentHandler {
	h := &CommentHandler{stage: newStage(HandlerComment, MsgTransactionSucceeded, deps)}
	h.owner = h
	return h
}

func (h *CommentHandler) Handle(ctx context.Context, p *dompay.Payment) error {
	return h.run(ctx, p, h.check)
}

func (h *CommentHandler) check(ctx context.Context, p *dompay.Payment) []dompay.Decision {
	h.say(ctx, MsgCommentChecking)
	if !p.HasComment() {
		h.say(ctx, MsgCommentAbsent)
		return []dompay.Decision{dompay.Flagged(dompay.CheckComment, "comment_absent")}
	}
	h.say(ctx, MsgCommentPresent)
	return []dompay.Decision{dompay.Approved(dompay.CheckComment)}
}
