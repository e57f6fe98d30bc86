package core

// CommandType represents the type of an input command
type CommandType int

const (
	CommandSelectCell CommandType = iota
	CommandMoveSelection
	CommandArmBuild
	CommandConfirmBuild
	CommandCancelBuild
	CommandDemolish
	CommandSetDifficulty
	CommandRestart
)

func (t CommandType) String() string {
	switch t {
	case CommandSelectCell:
		return "select_cell"
	case CommandMoveSelection:
		return "move_selection"
	case CommandArmBuild:
		return "arm_build"
	case CommandConfirmBuild:
		return "confirm_build"
	case CommandCancelBuild:
		return "cancel_build"
	case CommandDemolish:
		return "demolish"
	case CommandSetDifficulty:
		return "set_difficulty"
	case CommandRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Command is an input from the human side of the game.
type Command interface {
	GetType() CommandType
	Validate(g *Grid) error
}

// SelectCellCommand moves the cursor to an absolute cell
type SelectCellCommand struct {
	X, Y int
}

func (c *SelectCellCommand) GetType() CommandType { return CommandSelectCell }

func (c *SelectCellCommand) Validate(g *Grid) error {
	if !g.InBounds(c.X, c.Y) {
		return ErrInvalidCoordinates
	}
	return nil
}

// MoveSelectionCommand moves the cursor relatively; the result is clamped.
type MoveSelectionCommand struct {
	DX, DY int
}

func (c *MoveSelectionCommand) GetType() CommandType { return CommandMoveSelection }
func (c *MoveSelectionCommand) Validate(*Grid) error  { return nil }

// ArmBuildCommand arms (or, when already armed with the same kind, confirms) a build
type ArmBuildCommand struct {
	Kind BuildingKind
}

func (c *ArmBuildCommand) GetType() CommandType { return CommandArmBuild }

func (c *ArmBuildCommand) Validate(*Grid) error {
	for _, k := range BuildableKinds {
		if k == c.Kind {
			return nil
		}
	}
	return ErrUnknownBuilding
}

type ConfirmBuildCommand struct{}

func (c *ConfirmBuildCommand) GetType() CommandType { return CommandConfirmBuild }
func (c *ConfirmBuildCommand) Validate(*Grid) error  { return nil }

type CancelBuildCommand struct{}

func (c *CancelBuildCommand) GetType() CommandType { return CommandCancelBuild }
func (c *CancelBuildCommand) Validate(*Grid) error  { return nil }

// DemolishCommand removes a human building
type DemolishCommand struct {
	X, Y int
}

func (c *DemolishCommand) GetType() CommandType { return CommandDemolish }

func (c *DemolishCommand) Validate(g *Grid) error {
	if !g.InBounds(c.X, c.Y) {
		return ErrInvalidCoordinates
	}
	return nil
}

// SetDifficultyCommand selects a named difficulty level
type SetDifficultyCommand struct {
	Level string
}

func (c *SetDifficultyCommand) GetType() CommandType { return CommandSetDifficulty }

func (c *SetDifficultyCommand) Validate(*Grid) error {
	if c.Level == "" {
		return ErrInvalidDifficulty
	}
	return nil
}

type RestartCommand struct{}

func (c *RestartCommand) GetType() CommandType { return CommandRestart }
func (c *RestartCommand) Validate(*Grid) error  { return nil }
