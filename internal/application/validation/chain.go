package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyChain    = errors.New("validation: chain needs at least one handler")
	ErrNilHandler    = errors.New("validation: nil handler")
	ErrReleased      = errors.New("validation: chain released")
	ErrUnknownStage  = errors.New("validation: unknown stage")
	ErrDuplicateNode = errors.New("validation: handler appears twice in chain")
)

// StageKind names a handler variant in an assembly.
type StageKind string

const (
	StageBase               StageKind = HandlerBase
	StageBigMoney           StageKind = HandlerBigMoney
	StageSuspiciousActivity StageKind = HandlerSuspiciousActivity
	StageComment            StageKind = HandlerComment
)

// DefaultStages is the stock assembly. The suspicious-activity stage exists
// but is not part of it.
func DefaultStages() []StageKind {
	return []StageKind{StageBase, StageBigMoney, StageComment}
}

func ParseStageKind(name string) (StageKind, error) {
	switch k := StageKind(strings.ToLower(strings.TrimSpace(name))); k {
	case StageBase, StageBigMoney, StageSuspiciousActivity, StageComment:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}
}

// ResolveStages turns configured names into stage kinds. Empty names select
// DefaultStages; includeSuspicious adds the suspicious-activity stage just
// before the comment stage (or at the end) unless it is already present.
func ResolveStages(names []string, includeSuspicious bool) ([]StageKind, error) {
	kinds := DefaultStages()
	if len(names) > 0 {
		kinds = make([]StageKind, 0, len(names))
		for _, n := range names {
			k, err := ParseStageKind(n)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}
	}
	if !includeSuspicious {
		return kinds, nil
	}
	insertAt := len(kinds)
	for i, k := range kinds {
		if k == StageSuspiciousActivity {
			return kinds, nil
		}
		if k == StageComment && insertAt == len(kinds) {
			insertAt = i
		}
	}
	kinds = append(kinds, "")
	copy(kinds[insertAt+1:], kinds[insertAt:])
	kinds[insertAt] = StageSuspiciousActivity
	return kinds, nil
}

// Assembly describes which stages to build and how to parameterise them.
type Assembly struct {
	Stages            []StageKind
	Requisites        Predicate
	Funds             Predicate
	BigMoneyThreshold decimal.Decimal
	Monitor           Monitor
	SuspiciousDays    int
	History           HistoryProvider
}

// DefaultAssembly returns the stock stages with stock thresholds. Monitor is left
// nil for the caller to supply.
func DefaultAssembly() Assembly {
	return Assembly{
		Stages:            DefaultStages(),
		Requisites:        AlwaysTrue,
		Funds:             AlwaysTrue,
		BigMoneyThreshold: DefaultBigMoneyThreshold,
		SuspiciousDays:    DefaultSuspiciousDays,
		History:           StaticHistory(DefaultDaysSinceLastPayment),
	}
}

// Build instantiates one handler per stage kind and links them in order.
func Build(a Assembly, deps Dependencies) (*Chain, error) {
	handlers := make([]dompay.Handler, 0, len(a.Stages))
	for _, kind := range a.Stages {
		switch kind {
		case StageBase:
			handlers = append(handlers, NewBaseHandler(deps, a.Requisites, a.Funds))
		case StageBigMoney:
			handlers = append(handlers, NewBigMoneyHandler(deps, a.BigMoneyThreshold, a.Monitor))
		case StageSuspiciousActivity:
			handlers = append(handlers, NewSuspiciousActivityHandler(deps, a.SuspiciousDays, a.History))
		case StageComment:
			handlers = append(handlers, NewCommentHandler(deps))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, kind)
		}
	}
	chain, err := NewChain(handlers...)
	if err != nil {
		return nil, err
	}
	chain.ids = deps.IDs
	return chain, nil
}

type sealable interface {
	base() *stage
}

// Chain owns every node of a linked handler sequence. Nodes only hold
// non-owning links to their successors; the chain keeps them alive and
// releases them together.
type Chain struct {
	nodes    []dompay.Handler
	ids      IDGenerator
	released bool
}

// NewChain links handlers in the given order and seals the built-in stages so
// they cannot be relinked while the chain is in use.
func NewChain(handlers ...dompay.Handler) (*Chain, error) {
	if len(handlers) == 0 {
		return nil, ErrEmptyChain
	}
	seen := make(map[dompay.Handler]struct{}, len(handlers))
	for i, h := range handlers {
		if h == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilHandler, i)
		}
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("%w: %s at position %d: %w", ErrDuplicateNode, h.Name(), i, dompay.ErrCycle)
		}
		seen[h] = struct{}{}
	}

	// Clear stale links first so relinking in a new order cannot trip the cycle guard.
	for _, h := range handlers {
		if err := h.SetNext(nil); err != nil {
			return nil, fmt.Errorf("validation: reset %s: %w", h.Name(), err)
		}
	}
	for i := 0; i < len(handlers)-1; i++ {
		if err := handlers[i].SetNext(handlers[i+1]); err != nil {
			return nil, fmt.Errorf("validation: link %s -> %s: %w", handlers[i].Name(), handlers[i+1].Name(), err)
		}
	}
	for _, h := range handlers {
		if s, ok := h.(sealable); ok {
			s.base().seal()
		}
	}

	return &Chain{nodes: append([]dompay.Handler(nil), handlers...)}, nil
}

// Handle sends p through the chain from the head and returns the traversal report.
// The report is returned even when an error stops the traversal.
func (c *Chain) Handle(ctx context.Context, p *dompay.Payment) (*Report, error) {
	if c == nil || c.released {
		return nil, ErrReleased
	}
	if p == nil {
		return nil, dompay.ErrNilPayment
	}
	if ctx == nil {
		ctx = context.Background()
	}

	id := ""
	if c.ids != nil {
		id = c.ids.NewID()
	}
	report := newReport(id, p.ID)
	err := c.nodes[0].Handle(withReport(ctx, report), p)
	return report, err
}

func (c *Chain) Head() dompay.Handler {
	if c == nil || len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[0]
}

func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.nodes)
}

// Stages lists handler names in link order.
func (c *Chain) Stages() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.nodes))
	for _, h := range c.nodes {
		out = append(out, h.Name())
	}
	return out
}

// Release unlinks every node and drops them. The chain cannot be used afterwards.
func (c *Chain) Release() {
	if c == nil || c.released {
		return
	}
	for _, h := range c.nodes {
		if s, ok := h.(sealable); ok {
			s.base().unlink()
			continue
		}
		_ = h.SetNext(nil)
	}
	c.nodes = nil
	c.released = true
}
