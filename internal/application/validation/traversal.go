package validation

import (
	"context"
	"fmt"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
)

// State tracks one payment's walk through the chain.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StageReport is what one handler recorded while the payment passed through it.
type StageReport struct {
	Handler   string
	Position  int
	Decisions []dompay.Decision
}

// Report is the per-traversal record carried in the context. Position is the
// index of the stage currently (or last) handling the payment; Tail names the
// handler that emitted the completion signal.
type Report struct {
	ID        string
	PaymentID string
	State     State
	Position  int
	Stages    []StageReport
	Tail      string

	visited map[dompay.Handler]struct{}
}

type reportKey struct{}

func newReport(id, paymentID string) *Report {
	return &Report{
		ID:        id,
		PaymentID: paymentID,
		State:     StateNotStarted,
		Position:  -1,
		visited:   make(map[dompay.Handler]struct{}),
	}
}

// ReportFrom returns the traversal report carried by ctx, if any.
func ReportFrom(ctx context.Context) *Report {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(reportKey{}).(*Report)
	return r
}

func withReport(ctx context.Context, r *Report) context.Context {
	return context.WithValue(ctx, reportKey{}, r)
}

// ensureReport starts a traversal when a handler is invoked outside of Chain.Handle.
func ensureReport(ctx context.Context, p *dompay.Payment) (context.Context, *Report) {
	if r := ReportFrom(ctx); r != nil && r.State != StateCompleted {
		return ctx, r
	}
	r := newReport("", p.ID)
	return withReport(ctx, r), r
}

// enter registers h as the next stage. Seeing the same node twice means the
// links form a cycle.
func (r *Report) enter(h dompay.Handler, name string) (int, error) {
	if _, seen := r.visited[h]; seen {
		return r.Position, fmt.Errorf("%w: %s reached twice", dompay.ErrCycle, name)
	}
	r.visited[h] = struct{}{}
	r.State = StateInProgress
	r.Position = len(r.Stages)
	r.Stages = append(r.Stages, StageReport{Handler: name, Position: r.Position})
	return r.Position, nil
}

func (r *Report) record(position int, decisions []dompay.Decision) {
	r.Stages[position].Decisions = append(r.Stages[position].Decisions, decisions...)
}

func (r *Report) complete(tail string) {
	r.State = StateCompleted
	r.Tail = tail
	r.visited = nil
}

func (r *Report) Completed() bool { return r.State == StateCompleted }

// Handlers lists stage names in visit order.
func (r *Report) Handlers() []string {
	out := make([]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		out = append(out, s.Handler)
	}
	return out
}

func (r *Report) Decisions() []dompay.Decision {
	var out []dompay.Decision
	for _, s := range r.Stages {
		out = append(out, s.Decisions...)
	}
	return out
}

// Flags returns every flagged decision in visit order.
func (r *Report) Flags() []dompay.Decision {
	var out []dompay.Decision
	for _, d := range r.Decisions() {
		if d.IsFlagged() {
			out = append(out, d)
		}
	}
	return out
}

// Decision returns the first decision recorded for check.
func (r *Report) Decision(check string) (dompay.Decision, bool) {
	for _, d := range r.Decisions() {
		if d.Check == check {
			return d, true
		}
	}
	return dompay.Decision{}, false
}
