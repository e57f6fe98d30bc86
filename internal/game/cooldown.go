package game

import (
	"time"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// Cooldowns tracks the per-kind build cooldown of the human, in whole
// seconds of wall-clock time. It advances independently of ticks.
type Cooldowns struct {
	remaining map[core.BuildingKind]int
	carry     time.Duration
}

func NewCooldowns() *Cooldowns {
	return &Cooldowns{remaining: make(map[core.BuildingKind]int)}
}

// Start sets kind's countdown.
func (c *Cooldowns) Start(kind core.BuildingKind, seconds int) {
	if seconds <= 0 {
		delete(c.remaining, kind)
		return
	}
	c.remaining[kind] = seconds
}

func (c *Cooldowns) Remaining(kind core.BuildingKind) int {
	return c.remaining[kind]
}

func (c *Cooldowns) Ready(kind core.BuildingKind) bool {
	return c.remaining[kind] == 0
}

// Advance consumes elapsed time and decrements every countdown once per
// whole second. Partial seconds carry over. It returns the kinds that
// became ready.
func (c *Cooldowns) Advance(elapsed time.Duration) []core.BuildingKind {
	if elapsed <= 0 {
		return nil
	}
	c.carry += elapsed
	seconds := int(c.carry / time.Second)
	c.carry -= time.Duration(seconds) * time.Second
	if seconds == 0 {
		return nil
	}

	var ready []core.BuildingKind
	for _, kind := range core.BuildableKinds {
		left, ok := c.remaining[kind]
		if !ok {
			continue
		}
		left -= seconds
		if left <= 0 {
			delete(c.remaining, kind)
			ready = append(ready, kind)
			continue
		}
		c.remaining[kind] = left
	}
	return ready
}

// Reset clears every countdown.
func (c *Cooldowns) Reset() {
	c.remaining = make(map[core.BuildingKind]int)
	c.carry = 0
}

// Snapshot copies the active countdowns.
func (c *Cooldowns) Snapshot() map[core.BuildingKind]int {
	out := make(map[core.BuildingKind]int, len(c.remaining))
	for k, v := range c.remaining {
		out[k] = v
	}
	return out
}
