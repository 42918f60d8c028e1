// Package tui runs simulations in the terminal with Bubble Tea, locally or
// over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation step.
type TickMsg time.Time

const (
	minTickRate = 1
	maxTickRate = 60
)

// tickCmd schedules the next tick at the given steps per second.
func tickCmd(tickRate int) tea.Cmd {
	tickRate = min(max(tickRate, minTickRate), maxTickRate)
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
