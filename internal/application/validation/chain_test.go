package validation

import (
	"context"
	"errors"
	"reflect"
	"testing"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
)

func TestChainVisitsEveryHandlerInLinkOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stages []StageKind
	}{
		{"single", []StageKind{StageComment}},
		{"default", DefaultStages()},
		{"all four", []StageKind{StageBase, StageBigMoney, StageSuspiciousActivity, StageComment}},
		{"reordered with repeats", []StageKind{StageComment, StageBase, StageComment, StageSuspiciousActivity, StageBigMoney}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := DefaultAssembly()
			a.Stages = tt.stages
			a.Monitor = &countingMonitor{result: true}
			chain, err := Build(a, Dependencies{})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			defer chain.Release()

			report, err := chain.Handle(context.Background(), examplePayment())
			if err != nil {
				t.Fatalf("Handle failed: %v", err)
			}

			want := make([]string, 0, len(tt.stages))
			for _, k := range tt.stages {
				want = append(want, string(k))
			}
			if got := report.Handlers(); !reflect.DeepEqual(got, want) {
				t.Errorf("Expected handlers %v, got %v", want, got)
			}
			for i, s := range report.Stages {
				if s.Position != i {
					t.Errorf("Expected stage %d to have position %d, got %d", i, i, s.Position)
				}
			}
			if !report.Completed() {
				t.Errorf("Expected traversal to complete, state %s", report.State)
			}
			if report.Tail != want[len(want)-1] {
				t.Errorf("Expected tail %q, got %q", want[len(want)-1], report.Tail)
			}
		})
	}
}

func TestChainTailEmitsItsCompletionMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tail StageKind
		want MessageKey
	}{
		{StageBase, MsgBaseDone},
		{StageBigMoney, MsgMonitoringDone},
		{StageSuspiciousActivity, MsgSuspiciousDone},
		{StageComment, MsgTransactionSucceeded},
	}

	for _, tt := range tests {
		t.Run(string(tt.tail), func(t *testing.T) {
			t.Parallel()

			rep := &recordingReporter{}
			a := DefaultAssembly()
			a.Stages = []StageKind{tt.tail}
			chain, err := Build(a, Dependencies{Reporter: rep})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			if _, err := chain.Handle(context.Background(), examplePayment()); err != nil {
				t.Fatalf("Handle failed: %v", err)
			}
			if last := rep.keys[len(rep.keys)-1]; last != tt.want {
				t.Errorf("Expected last diagnostic %q, got %q", tt.want, last)
			}
		})
	}
}

func TestOnlyTheTailCompletes(t *testing.T) {
	t.Parallel()

	rep := &recordingReporter{}
	a := DefaultAssembly()
	a.Stages = []StageKind{StageBase, StageBigMoney, StageSuspiciousActivity, StageComment}
	chain, err := Build(a, Dependencies{Reporter: rep})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, err := chain.Handle(context.Background(), examplePayment()); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	for _, k := range []MessageKey{MsgBaseDone, MsgMonitoringDone, MsgSuspiciousDone} {
		if rep.has(k) {
			t.Errorf("Non-tail completion message %q was emitted", k)
		}
	}
	if !rep.has(MsgTransactionSucceeded) {
		t.Error("Expected the tail completion message")
	}
}

func TestSetNextRejectsSelfLinkAndCycles(t *testing.T) {
	t.Parallel()

	base := NewBaseHandler(Dependencies{}, nil, nil)
	big := NewBigMoneyHandler(Dependencies{}, DefaultBigMoneyThreshold, nil)
	comment := NewCommentHandler(Dependencies{})

	if err := base.SetNext(base); !errors.Is(err, dompay.ErrSelfLink) {
		t.Errorf("Expected ErrSelfLink, got %v", err)
	}
	if err := base.SetNext(big); err != nil {
		t.Fatalf("base -> big_money: %v", err)
	}
	if err := big.SetNext(comment); err != nil {
		t.Fatalf("big_money -> comment: %v", err)
	}
	if err := comment.SetNext(base); !errors.Is(err, dompay.ErrCycle) {
		t.Errorf("Expected ErrCycle closing comment -> base, got %v", err)
	}
	if comment.Next() != nil {
		t.Error("Rejected link must leave the successor unchanged")
	}

	// Replacing a link is allowed.
	if err := base.SetNext(comment); err != nil {
		t.Errorf("Expected relink to succeed, got %v", err)
	}
	if base.Next() != dompay.Handler(comment) {
		t.Error("Expected base to point at comment after relink")
	}
}

func TestNewChainValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewChain(); !errors.Is(err, ErrEmptyChain) {
		t.Errorf("Expected ErrEmptyChain, got %v", err)
	}

	comment := NewCommentHandler(Dependencies{})
	if _, err := NewChain(comment, nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("Expected ErrNilHandler, got %v", err)
	}

	_, err := NewChain(comment, NewBaseHandler(Dependencies{}, nil, nil), comment)
	if !errors.Is(err, ErrDuplicateNode) || !errors.Is(err, dompay.ErrCycle) {
		t.Errorf("Expected duplicate node to be reported as a cycle, got %v", err)
	}
}

func TestNewChainRelinksInGivenOrder(t *testing.T) {
	t.Parallel()

	base := NewBaseHandler(Dependencies{}, nil, nil)
	comment := NewCommentHandler(Dependencies{})
	if err := comment.SetNext(base); err != nil {
		t.Fatalf("pre-link failed: %v", err)
	}

	chain, err := NewChain(base, comment)
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}
	if comment.Next() != nil {
		t.Error("Expected stale link on the tail to be cleared")
	}
	if got := chain.Stages(); !reflect.DeepEqual(got, []string{HandlerBase, HandlerComment}) {
		t.Errorf("Unexpected stages %v", got)
	}
}

func TestChainIsSealedUntilReleased(t *testing.T) {
	t.Parallel()

	chain := defaultChain(t, nil, nil)
	head := chain.Head()

	if err := head.SetNext(nil); !errors.Is(err, dompay.ErrSealed) {
		t.Errorf("Expected ErrSealed while chain is live, got %v", err)
	}
	if _, err := NewChain(head); !errors.Is(err, dompay.ErrSealed) {
		t.Errorf("Expected a node owned by another chain to be rejected, got %v", err)
	}

	chain.Release()

	if _, err := chain.Handle(context.Background(), examplePayment()); !errors.Is(err, ErrReleased) {
		t.Errorf("Expected ErrReleased after Release, got %v", err)
	}
	if head.Next() != nil {
		t.Error("Expected Release to unlink nodes")
	}
	if err := head.SetNext(nil); err != nil {
		t.Errorf("Expected released node to accept links, got %v", err)
	}
	if chain.Len() != 0 {
		t.Errorf("Expected released chain to own no nodes, got %d", chain.Len())
	}

	// Release is idempotent.
	chain.Release()
}

// rogueHandler hides its successor so the link-time guard cannot see the loop.
type rogueHandler struct{ target dompay.Handler }

func (r *rogueHandler) Name() string                 { return "rogue" }
func (r *rogueHandler) SetNext(dompay.Handler) error { return nil }
func (r *rogueHandler) Next() dompay.Handler         { return nil }
func (r *rogueHandler) Handle(ctx context.Context, p *dompay.Payment) error {
	return r.target.Handle(ctx, p)
}

func TestTraversalDetectsHiddenCycle(t *testing.T) {
	t.Parallel()

	base := NewBaseHandler(Dependencies{}, nil, nil)
	rogue := &rogueHandler{target: base}
	chain, err := NewChain(base, rogue)
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	report, err := chain.Handle(context.Background(), examplePayment())
	if !errors.Is(err, dompay.ErrCycle) {
		t.Fatalf("Expected ErrCycle, got %v", err)
	}
	if report == nil || report.Completed() {
		t.Fatalf("Expected an incomplete report, got %+v", report)
	}
	if got := report.Handlers(); !reflect.DeepEqual(got, []string{HandlerBase}) {
		t.Errorf("Expected only base to be recorded, got %v", got)
	}
}

func TestHandleRejectsNilPayment(t *testing.T) {
	t.Parallel()

	chain := defaultChain(t, nil, nil)
	if _, err := chain.Handle(context.Background(), nil); !errors.Is(err, dompay.ErrNilPayment) {
		t.Errorf("Expected ErrNilPayment from chain, got %v", err)
	}
	if err := NewCommentHandler(Dependencies{}).Handle(context.Background(), nil); !errors.Is(err, dompay.ErrNilPayment) {
		t.Errorf("Expected ErrNilPayment from handler, got %v", err)
	}
}

func TestHandlerWorksWithoutChain(t *testing.T) {
	t.Parallel()

	rep := &recordingReporter{}
	base := NewBaseHandler(Dependencies{Reporter: rep}, nil, nil)
	comment := NewCommentHandler(Dependencies{Reporter: rep})
	if err := base.SetNext(comment); err != nil {
		t.Fatalf("link failed: %v", err)
	}

	if err := base.Handle(context.Background(), examplePayment()); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !rep.has(MsgTransactionSucceeded) {
		t.Error("Expected completion when invoking the head directly")
	}

	// The same nodes can carry a second payment.
	rep.keys = nil
	if err := base.Handle(context.Background(), examplePayment()); err != nil {
		t.Fatalf("second Handle failed: %v", err)
	}
	if !rep.has(MsgTransactionSucceeded) {
		t.Error("Expected completion on the second payment")
	}
}

func TestTraversalIDsComeFromGenerator(t *testing.T) {
	t.Parallel()

	chain := defaultChain(t, nil, nil)
	first, err := chain.Handle(context.Background(), examplePayment())
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	second, err := chain.Handle(context.Background(), examplePayment())
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Errorf("Expected distinct traversal IDs, got %q and %q", first.ID, second.ID)
	}
	if first.PaymentID != "pay-1" {
		t.Errorf("Expected payment id pay-1, got %q", first.PaymentID)
	}
}

func TestResolveStages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		names   []string
		suspect bool
		want    []StageKind
		wantErr error
	}{
		{"default", nil, false, DefaultStages(), nil},
		{"default plus suspicious", nil, true, []StageKind{StageBase, StageBigMoney, StageSuspiciousActivity, StageComment}, nil},
		{"explicit", []string{"comment", " BASE "}, false, []StageKind{StageComment, StageBase}, nil},
		{"explicit without comment", []string{"base"}, true, []StageKind{StageBase, StageSuspiciousActivity}, nil},
		{"already present", []string{"suspicious_activity", "comment"}, true, []StageKind{StageSuspiciousActivity, StageComment}, nil},
		{"unknown", []string{"base", "fraud"}, false, nil, ErrUnknownStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveStages(tt.names, tt.suspect)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBuildRejectsUnknownStage(t *testing.T) {
	t.Parallel()

	a := DefaultAssembly()
	a.Stages = []StageKind{StageBase, "loyalty"}
	if _, err := Build(a, Dependencies{}); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("Expected ErrUnknownStage, got %v", err)
	}
}
