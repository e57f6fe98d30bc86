package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
)

type fakeTarget struct {
	grid    *core.Grid
	calls   []string
	failArm error
}

func newFakeTarget() *fakeTarget { return &fakeTarget{grid: core.NewGrid(6, 4)} }

func (f *fakeTarget) Grid() *core.Grid { return f.grid }
func (f *fakeTarget) CurrentTick() int { return 7 }

func (f *fakeTarget) SelectCell(x, y int) error {
	f.calls = append(f.calls, "select")
	return nil
}

func (f *fakeTarget) MoveSelection(dx, dy int) error {
	f.calls = append(f.calls, "move")
	return nil
}

func (f *fakeTarget) ArmBuild(kind core.BuildingKind) error {
	f.calls = append(f.calls, "arm:"+kind.String())
	return f.failArm
}

func (f *fakeTarget) ConfirmBuild() error {
	f.calls = append(f.calls, "confirm")
	return nil
}

func (f *fakeTarget) CancelBuild() error {
	f.calls = append(f.calls, "cancel")
	return nil
}

func (f *fakeTarget) Demolish(x, y int) error {
	f.calls = append(f.calls, "demolish")
	return nil
}

func (f *fakeTarget) SetDifficulty(level string) error {
	f.calls = append(f.calls, "difficulty:"+level)
	return nil
}

func (f *fakeTarget) Restart() error {
	f.calls = append(f.calls, "restart")
	return nil
}

type recordingPublisher struct {
	events []interface{}
}

func (r *recordingPublisher) Publish(event interface{}) { r.events = append(r.events, event) }

func TestProcessDispatchesInOrder(t *testing.T) {
	pub := &recordingPublisher{}
	cp := NewCommandProcessor(zerolog.Nop(), pub, "game-1")
	target := newFakeTarget()

	err := cp.Process(context.Background(), target, []core.Command{
		&core.SelectCellCommand{X: 1, Y: 2},
		&core.MoveSelectionCommand{DX: 1},
		&core.ArmBuildCommand{Kind: core.KindTurret},
		&core.ConfirmBuildCommand{},
		&core.CancelBuildCommand{},
		&core.DemolishCommand{X: 0, Y: 0},
		&core.SetDifficultyCommand{Level: "easy"},
		&core.RestartCommand{},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"select", "move", "arm:turret", "confirm", "cancel", "demolish", "difficulty:easy", "restart",
	}, target.calls)
	require.Len(t, pub.events, 8)
	for _, ev := range pub.events {
		processed, ok := ev.(*events.CommandProcessedEvent)
		require.True(t, ok)
		assert.Equal(t, "game-1", processed.GameID())
		assert.Equal(t, 7, processed.Metadata.Tick)
	}
}

func TestProcessValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		cmd     core.Command
		wantErr error
	}{
		{"select out of bounds", &core.SelectCellCommand{X: 6, Y: 0}, core.ErrInvalidCoordinates},
		{"demolish out of bounds", &core.DemolishCommand{X: -1, Y: 0}, core.ErrInvalidCoordinates},
		{"arm placeholder", &core.ArmBuildCommand{Kind: core.KindPlaceholder}, core.ErrUnknownBuilding},
		{"empty difficulty", &core.SetDifficultyCommand{}, core.ErrInvalidDifficulty},
		{"nil command", nil, core.ErrInvalidCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := newFakeTarget()
			cp := NewCommandProcessor(zerolog.Nop(), nil, "game-1")

			err := cp.Process(context.Background(), target, []core.Command{tt.cmd})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, target.calls)
		})
	}
}

func TestProcessContinuesAfterFailure(t *testing.T) {
	pub := &recordingPublisher{}
	cp := NewCommandProcessor(zerolog.Nop(), pub, "game-1")
	target := newFakeTarget()
	target.failArm = core.ErrInsufficientResources

	err := cp.Process(context.Background(), target, []core.Command{
		&core.ArmBuildCommand{Kind: core.KindCommandCenter},
		&core.SelectCellCommand{X: 0, Y: 0},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInsufficientResources))
	assert.Contains(t, err.Error(), "arm command_center")
	assert.Equal(t, []string{"arm:command_center", "select"}, target.calls)

	require.Len(t, pub.events, 2)
	rejected, ok := pub.events[0].(*events.CommandRejectedEvent)
	require.True(t, ok)
	assert.Equal(t, core.ErrInsufficientResources.Error(), rejected.Reason)
	_, ok = pub.events[1].(*events.CommandProcessedEvent)
	assert.True(t, ok)
}

func TestProcessHonorsCancelledContext(t *testing.T) {
	cp := NewCommandProcessor(zerolog.Nop(), nil, "game-1")
	target := newFakeTarget()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cp.Process(ctx, target, []core.Command{&core.RestartCommand{}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, target.calls)
}
