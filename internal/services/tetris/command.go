package tetris

// Command はキーボードなどの入力から1回のポーリングで得られる操作です。
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandMoveDown
	CommandRotate
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandMoveLeft:
		return "move_left"
	case CommandMoveRight:
		return "move_right"
	case CommandMoveDown:
		return "move_down"
	case CommandRotate:
		return "rotate"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseCommand はアクション名 ("move_left" など) を Command に変換します。
func ParseCommand(action string) (Command, bool) {
	switch action {
	case "none", "":
		return CommandNone, true
	case "move_left":
		return CommandMoveLeft, true
	case "move_right":
		return CommandMoveRight, true
	case "move_down", "soft_drop":
		return CommandMoveDown, true
	case "rotate", "rotate_right":
		return CommandRotate, true
	case "quit":
		return CommandQuit, true
	default:
		return CommandNone, false
	}
}
