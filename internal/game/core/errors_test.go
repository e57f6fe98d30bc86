package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPlacementError(t *testing.T) {
	assert.Nil(t, WrapPlacementError(KindTurret, Coordinate{1, 1}, nil))

	err := WrapPlacementError(KindTurret, Coordinate{3, 4}, ErrCellOccupied)
	require.NotNil(t, err)
	assert.Equal(t, "build turret at (3,4): cell occupied", err.Error())
	assert.True(t, errors.Is(err, ErrCellOccupied))

	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindTurret, pe.Kind)
}

func TestWrapCommandError(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		err      error
		expected string
		isNil    bool
	}{
		{name: "nil error returns nil", cmd: &CancelBuildCommand{}, isNil: true},
		{
			name:     "select cell",
			cmd:      &SelectCellCommand{X: 30, Y: 2},
			err:      ErrInvalidCoordinates,
			expected: "select cell (30,2): invalid coordinates",
		},
		{
			name:     "arm build",
			cmd:      &ArmBuildCommand{Kind: KindRefinery},
			err:      ErrNotResourceDeposit,
			expected: "arm refinery: cell is not a resource deposit",
		},
		{
			name:     "nil command fallback",
			cmd:      nil,
			err:      ErrGameOver,
			expected: "command: game is over",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapCommandError(tt.cmd, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapGameStateError(t *testing.T) {
	tests := []struct {
		name     string
		tick     int
		phase    string
		err      error
		expected string
		isNil    bool
	}{
		{name: "nil error returns nil", tick: 5, phase: "combat", isNil: true},
		{
			name:     "combat phase",
			tick:     100,
			phase:    "combat",
			err:      ErrGameOver,
			expected: "game tick 100 [combat]: game is over",
		},
		{
			name:     "planner phase",
			tick:     25,
			phase:    "planner",
			err:      fmt.Errorf("placement failed"),
			expected: "game tick 25 [planner]: placement failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapGameStateError(tt.tick, tt.phase, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			if errors.Is(tt.err, ErrGameOver) {
				assert.True(t, errors.Is(wrapped, ErrGameOver))
			}
		})
	}
}
