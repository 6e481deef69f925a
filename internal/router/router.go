// Package router keeps the stack of TUI screens: the exam form at the
// bottom and results pushed on top of it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/chutelab/chute/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen. The root screen is never popped.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen, e.g. a rerun's
// results. When From is set the swap only happens while From is still the
// active screen; a request from a screen that was popped meanwhile is dropped.
type ReplaceScreenMsg struct {
	Screen screen.Screen
	From   screen.Screen
}

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen, keeping the root. The revealed screen keeps
// its state and is not re-initialized.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) > 1 {
		r.stack[len(r.stack)-1] = nil
		r.stack = r.stack[:len(r.stack)-1]
	}
	return nil
}

// Replace swaps the top screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		if msg.From != nil && msg.From != r.Active() {
			return nil
		}
		return r.Replace(msg.Screen)
	}

	var cmd tea.Cmd
	r.stack[len(r.stack)-1], cmd = r.Active().Update(msg)
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
