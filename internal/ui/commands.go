package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lumen/internal/hue"
)

// Messages

type lightsMsg struct {
	lights []hue.Light
	err    error
}

type pairMsg struct {
	err error
}

// flushMsg fires one throttle interval after a flush was armed for a light.
type flushMsg struct {
	id string
}

type brightnessMsg struct {
	id  string
	bri int
	err error
}

// Commands

func fetchLightsCmd(ctx context.Context, bridge hue.Bridge) tea.Cmd {
	return func() tea.Msg {
		lights, err := bridge.Lights(ctx)
		return lightsMsg{lights: lights, err: err}
	}
}

func pairCmd(ctx context.Context, bridge hue.Bridge) tea.Cmd {
	return func() tea.Msg {
		return pairMsg{err: bridge.Pair(ctx)}
	}
}

func flushCmd(id string, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return flushMsg{id: id}
	})
}

func setBrightnessCmd(ctx context.Context, bridge hue.Bridge, id string, bri int) tea.Cmd {
	return func() tea.Msg {
		return brightnessMsg{id: id, bri: bri, err: bridge.SetBrightness(ctx, id, bri)}
	}
}
