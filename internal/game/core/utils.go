package core

import "fmt"

// IntToStringFixedWidth converts an integer to a string of a specified width,
// left-padding with spaces if the number string is shorter than the width.
func IntToStringFixedWidth(num int, width int) string {
	return fmt.Sprintf("%*d", width, num)
}

// DescribeCommand renders a command for logs and error messages.
func DescribeCommand(cmd Command) string {
	if cmd == nil {
		return "nil"
	}
	switch c := cmd.(type) {
	case *SelectCellCommand:
		return fmt.Sprintf("select cell (%d,%d)", c.X, c.Y)
	case *MoveSelectionCommand:
		return fmt.Sprintf("move selection by (%d,%d)", c.DX, c.DY)
	case *ArmBuildCommand:
		return fmt.Sprintf("arm %s", c.Kind)
	case *DemolishCommand:
		return fmt.Sprintf("demolish (%d,%d)", c.X, c.Y)
	case *SetDifficultyCommand:
		return fmt.Sprintf("set difficulty %q", c.Level)
	default:
		return cmd.GetType().String()
	}
}
