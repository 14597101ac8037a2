package monitoring

import (
	"context"
	"math/rand"
	"sync"
	"time"

	dompay "github.com/Zhima-Mochi/paychain/internal/domain/payment"
)

// Random simulates financial monitoring with a fair coin. Seed it to make runs reproducible.
type Random struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewRandom seeds from the clock when seed is zero.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{random: rand.New(rand.NewSource(seed))}
}

// Screen draws a fair coin. A cancelled context is reported as an error, not as a failed screen.
func (m *Random) Screen(ctx context.Context, _ *dompay.Payment) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.random.Intn(2) == 1, nil
}
