// Package ui provides terminal rendering and keyboard input using tcell.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
// The terminal is in raw mode until Close is called.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes an existing tcell.Screen, such as a simulation screen.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// NextKey blocks until the next key event and returns it.
// Resize events redraw the whole screen and are not returned.
// It returns false once the screen has been closed.
func (s *Screen) NextKey() (*tcell.EventKey, bool) {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return nil, false
		case *tcell.EventKey:
			return ev, true
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// Frame clears the buffer, runs draw and flushes the result to the terminal.
func (s *Screen) Frame(draw func()) {
	s.screen.Clear()
	draw()
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes str starting at (x, y) on a single line.
func (s *Screen) DrawText(x, y int, str string, style tcell.Style) {
	for i, ch := range []rune(str) {
		s.SetContent(x+i, y, ch, style)
	}
}
