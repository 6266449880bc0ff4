package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	game "github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/services/tetris"
)

const commandBufferSize = 64

// DecodeKey maps a key press to a game command.
// Unknown keys decode to CommandNone.
func DecodeKey(key tcell.Key, ch rune) game.Command {
	switch key {
	case tcell.KeyLeft:
		return game.CommandMoveLeft
	case tcell.KeyRight:
		return game.CommandMoveRight
	case tcell.KeyDown:
		return game.CommandMoveDown
	case tcell.KeyUp:
		return game.CommandRotate
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CommandQuit
	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			return game.CommandQuit
		case 'h', 'a':
			return game.CommandMoveLeft
		case 'l', 'd':
			return game.CommandMoveRight
		case 'j', 's':
			return game.CommandMoveDown
		case 'k', 'w', ' ':
			return game.CommandRotate
		}
	}
	return game.CommandNone
}

// KeyboardSource turns terminal key events into game commands.
// A background goroutine blocks on the screen while PollCommand never blocks.
type KeyboardSource struct {
	screen *Screen
	cmds   chan game.Command
}

// NewKeyboardSource creates a command source reading from screen.
func NewKeyboardSource(screen *Screen) *KeyboardSource {
	return &KeyboardSource{
		screen: screen,
		cmds:   make(chan game.Command, commandBufferSize),
	}
}

// Start begins reading events until ctx is done or the screen is closed.
func (k *KeyboardSource) Start(ctx context.Context) {
	go func() {
		for {
			ev, ok := k.screen.NextKey()
			if !ok {
				return
			}
			k.push(DecodeKey(ev.Key(), ev.Rune()))
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

// PollCommand returns the next buffered command, or CommandNone when there is none.
func (k *KeyboardSource) PollCommand() game.Command {
	select {
	case cmd := <-k.cmds:
		return cmd
	default:
		return game.CommandNone
	}
}

// push queues cmd. When the buffer is full the oldest command is dropped,
// so a quit request always gets through.
func (k *KeyboardSource) push(cmd game.Command) {
	if cmd == game.CommandNone {
		return
	}
	for {
		select {
		case k.cmds <- cmd:
			return
		default:
		}
		select {
		case <-k.cmds:
		default:
		}
	}
}
