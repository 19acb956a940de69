// Package ui draws generated levels on a terminal using tcell.
package ui

import "github.com/gdamore/tcell/v2"

// Screen wraps tcell.Screen with the handful of calls the viewer needs.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation
// screen in tests.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent blocks until the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the back buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the back buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets one cell.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Size returns the terminal size in cells.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync redraws the whole terminal, used after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}
