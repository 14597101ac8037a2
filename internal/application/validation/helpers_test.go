package validation

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
	"github.com/shopspring/decimal"
)

type recordingReporter struct {
	keys []MessageKey
	args [][]any
}

func (r *recordingReporter) Report(_ context.Context, key MessageKey, args ...any) {
	r.keys = append(r.keys, key)
	r.args = append(r.args, args)
}

func (r *recordingReporter) has(key MessageKey) bool {
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

type countingPacer struct{ calls int }

func (p *countingPacer) Pace(context.Context) { p.calls++ }

type countingMonitor struct {
	calls  int
	result bool
	err    error
}

func (m *countingMonitor) Screen(context.Context, *dompay.Payment) (bool, error) {
	m.calls++
	return m.result, m.err
}

type historyFunc func(ctx context.Context, sender string) (int, error)

func (f historyFunc) DaysSinceLastPayment(ctx context.Context, sender string) (int, error) {
	return f(ctx, sender)
}

var errHistoryDown = errors.New("history backend down")

type sequentialIDs struct{ n int }

func (s *sequentialIDs) NewID() string {
	s.n++
	return "trv-" + string(rune('0'+s.n))
}

// examplePayment mirrors the stock demo transfer.
func examplePayment() *dompay.Payment {
	return dompay.New(
		"pay-1",
		"5375411419283745",
		"5375411428374650",
		decimal.NewFromInt(1000),
		"UAH",
		"оплата аренды помещения на основании договора №17 от 12.01.2023",
		time.Date(2023, 1, 12, 9, 0, 0, 0, time.UTC),
	)
}

func defaultChain(t *testing.T, rep Reporter, monitor Monitor) *Chain {
	t.Helper()
	a := DefaultAssembly()
	a.Monitor = monitor
	chain, err := Build(a, Dependencies{Reporter: rep, IDs: &sequentialIDs{}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(chain.Release)
	return chain
}

func assertKeys(t *testing.T, got, want []MessageKey) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("diagnostics mismatch\n got: %v\nwant: %v", got, want)
	}
}
