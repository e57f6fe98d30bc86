package planner

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
)

// Levels maps a difficulty name to the planner step divisor.
// A lower divisor makes the opponent act more often.
type Levels map[string]int

const DefaultDifficulty = "hard"

func DefaultLevels() Levels {
	return Levels{"easy": 4, "hard": 3, "extreme": 2}
}

// Divisor resolves a difficulty name.
func (l Levels) Divisor(name string) (int, error) {
	d, ok := l[name]
	if !ok || d <= 0 {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidDifficulty, name)
	}
	return d, nil
}

// Names returns the level names ordered from easiest to hardest.
func (l Levels) Names() []string {
	names := make([]string, 0, len(l))
	for n := range l {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if l[names[i]] != l[names[j]] {
			return l[names[i]] > l[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
