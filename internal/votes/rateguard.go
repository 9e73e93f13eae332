package votes

import (
	"sync"
	"time"
)

// DefaultCooldown is how long a voter must wait between votes on any post.
const DefaultCooldown = 5 * time.Second

// RateGuard rejects a vote attempt arriving within the cooldown window of
// the same voter's previous vote, whatever post either vote targeted.
type RateGuard struct {
	cooldown time.Duration
	now      func() time.Time

	mu   sync.Mutex
	last map[int]time.Time
}

func NewRateGuard(cooldown time.Duration) *RateGuard {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &RateGuard{
		cooldown: cooldown,
		now:      time.Now,
		last:     make(map[int]time.Time),
	}
}

// Allow records the attempt and returns ErrRateLimited when it lands
// inside the voter's cooldown window. A rejected attempt does not reset
// the window.
func (g *RateGuard) Allow(voterID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if prev, ok := g.last[voterID]; ok && now.Sub(prev) < g.cooldown {
		return ErrRateLimited
	}
	g.last[voterID] = now
	return nil
}
