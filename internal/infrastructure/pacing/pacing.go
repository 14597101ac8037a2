package pacing

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/paychain/internal/application/validation"
	"golang.org/x/time/rate"
)

// New returns a pacer that lets one diagnostic line through per interval.
// A zero or negative interval disables pacing.
func New(interval time.Duration) validation.Pacer {
	if interval <= 0 {
		return validation.NopPacer()
	}
	// Burst 1 with the bucket drained up front: every call waits a full interval.
	l := rate.NewLimiter(rate.Every(interval), 1)
	l.Allow()
	return &limited{limiter: l}
}

type limited struct {
	limiter *rate.Limiter
}

// Pace blocks until the next slot. A cancelled context ends the wait early;
// pacing never fails the caller.
func (p *limited) Pace(ctx context.Context) {
	_ = p.limiter.Wait(ctx)
}
