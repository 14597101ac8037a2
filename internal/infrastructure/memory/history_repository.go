package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrFutureTimestamp = errors.New("history repository: payment time is in the future")

// HistoryRepository remembers when each sender last paid. Senders it has never
// seen are answered with fallbackDays.
type HistoryRepository struct {
	mu           sync.RWMutex
	lastPayments map[string]time.Time
	fallbackDays int
	now          func() time.Time
}

func NewHistoryRepository(fallbackDays int, now func() time.Time) *HistoryRepository {
	if now == nil {
		now = time.Now
	}
	return &HistoryRepository{
		lastPayments: make(map[string]time.Time),
		fallbackDays: fallbackDays,
		now:          now,
	}
}

// Record stores at as the sender's latest payment unless a later one is already known.
func (r *HistoryRepository) Record(ctx context.Context, sender string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sender == "" {
		return fmt.Errorf("history repository: sender is required")
	}
	if at.After(r.now()) {
		return ErrFutureTimestamp
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.lastPayments[sender]; ok && prev.After(at) {
		return nil
	}
	r.lastPayments[sender] = at.UTC()
	return nil
}

func (r *HistoryRepository) DaysSinceLastPayment(ctx context.Context, sender string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	last, ok := r.lastPayments[sender]
	r.mu.RUnlock()

	if !ok {
		return r.fallbackDays, nil
	}
	return int(r.now().Sub(last) / (24 * time.Hour)), nil
}
