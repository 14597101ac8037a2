package payment

import (
	"context"
	"errors"
)

var (
	ErrSelfLink = errors.New("payment: handler cannot link to itself")
	ErrCycle    = errors.New("payment: handler chain contains a cycle")
	ErrSealed   = errors.New("payment: handler chain is sealed")
)

// Handler is one stage of the validation chain.
//
// Handle runs the stage's checks, reports them, then forwards to the successor
// or, when there is none, emits the completion signal. Check outcomes never
// surface as errors; only a nil payment or a cycle found during traversal do.
//
// SetNext assigns or replaces the successor. The link is non-owning: the chain
// that created both nodes keeps them alive.
type Handler interface {
	Name() string
	Handle(ctx context.Context, p *Payment) error
	SetNext(next Handler) error
	Next() Handler
}

// Reaches reports whether start leads to target by following Next links.
// It stops after limit hops so an already broken chain cannot loop forever.
func Reaches(start, target Handler, limit int) bool {
	for h, hops := start, 0; h != nil && hops <= limit; h, hops = h.Next(), hops+1 {
		if h == target {
			return true
		}
	}
	return false
}
