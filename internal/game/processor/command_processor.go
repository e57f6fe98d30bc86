package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
)

// Target is the engine surface commands are applied to. It lives here so the
// processor does not import the game package.
type Target interface {
	Grid() *core.Grid
	CurrentTick() int
	SelectCell(x, y int) error
	MoveSelection(dx, dy int) error
	ArmBuild(kind core.BuildingKind) error
	ConfirmBuild() error
	CancelBuild() error
	Demolish(x, y int) error
	SetDifficulty(level string) error
	Restart() error
}

// EventPublisher accepts events without the processor depending on the bus.
type EventPublisher interface {
	Publish(event interface{})
}

// CommandProcessor validates human commands and dispatches them to a Target.
type CommandProcessor struct {
	logger    zerolog.Logger
	publisher EventPublisher
	gameID    string
}

// NewCommandProcessor creates a new command processor. publisher may be nil.
func NewCommandProcessor(logger zerolog.Logger, publisher EventPublisher, gameID string) *CommandProcessor {
	return &CommandProcessor{
		logger:    logger.With().Str("component", "CommandProcessor").Logger(),
		publisher: publisher,
		gameID:    gameID,
	}
}

// Process applies cmds in order. A failing command does not stop the ones
// after it; the first error is returned wrapped with the command that caused
// it.
func (cp *CommandProcessor) Process(ctx context.Context, target Target, cmds []core.Command) error {
	var firstErr error

	for _, cmd := range cmds {
		select {
		case <-ctx.Done():
			cp.logger.Warn().Err(ctx.Err()).Msg("Command processing interrupted by context cancellation")
			return ctx.Err()
		default:
		}

		if cmd == nil {
			if firstErr == nil {
				firstErr = core.WrapCommandError(nil, core.ErrInvalidCommand)
			}
			continue
		}

		tick := target.CurrentTick()
		err := cmd.Validate(target.Grid())
		if err == nil {
			err = cp.dispatch(target, cmd)
		}

		if err != nil {
			wrapped := core.WrapCommandError(cmd, err)
			cp.logger.Debug().Err(wrapped).Str("command", cmd.GetType().String()).Int("tick", tick).Msg("Command rejected")
			cp.publish(events.NewCommandRejectedEvent(cp.gameID, cmd, err.Error(), tick))
			if firstErr == nil {
				firstErr = wrapped
			}
			continue
		}

		cp.logger.Debug().Str("command", core.DescribeCommand(cmd)).Int("tick", tick).Msg("Command applied")
		cp.publish(events.NewCommandProcessedEvent(cp.gameID, cmd, "ok", target.CurrentTick()))
	}

	return firstErr
}

func (cp *CommandProcessor) dispatch(target Target, cmd core.Command) error {
	switch c := cmd.(type) {
	case *core.SelectCellCommand:
		return target.SelectCell(c.X, c.Y)
	case *core.MoveSelectionCommand:
		return target.MoveSelection(c.DX, c.DY)
	case *core.ArmBuildCommand:
		return target.ArmBuild(c.Kind)
	case *core.ConfirmBuildCommand:
		return target.ConfirmBuild()
	case *core.CancelBuildCommand:
		return target.CancelBuild()
	case *core.DemolishCommand:
		return target.Demolish(c.X, c.Y)
	case *core.SetDifficultyCommand:
		return target.SetDifficulty(c.Level)
	case *core.RestartCommand:
		return target.Restart()
	default:
		cp.logger.Warn().Str("command_type", cmd.GetType().String()).Msg("Unhandled command type")
		return fmt.Errorf("%w: %s", core.ErrInvalidCommand, cmd.GetType())
	}
}

func (cp *CommandProcessor) publish(event interface{}) {
	if cp.publisher != nil {
		cp.publisher.Publish(event)
	}
}
