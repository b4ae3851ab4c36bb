package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lumen/internal/hue"
	"github.com/five82/lumen/internal/prefs"
	"github.com/five82/lumen/internal/state"
	"github.com/five82/lumen/internal/throttle"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Bridge    hue.Bridge
	Store     *state.Store
	Logger    *slog.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	Host      string
	Interval  time.Duration // minimum spacing of brightness updates per light
	AutoPair  bool          // pair on start when the bridge has no username
}

// Model is the root application state for Bubble Tea. Every UI event and
// every bridge completion arrives here as a message, on one goroutine.
type Model struct {
	// Configuration
	ctx       context.Context
	bridge    hue.Bridge
	store     *state.Store
	logger    *slog.Logger
	prefsPath string
	host      string
	interval  time.Duration

	// UI state
	keys     keyMap
	theme    Theme
	prefs    prefs.Prefs
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Light list state
	selectedRow int
	throttles   *throttle.Set
	pending     map[string]struct{} // lights with an armed flush

	// Status line
	pairing     bool
	status      string
	statusError bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = throttle.DefaultInterval
	}

	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Defaults()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		bridge:    opts.Bridge,
		store:     store,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		host:      opts.Host,
		interval:  interval,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(p.Theme),
		prefs:     p,
		spinner:   sp,
		throttles: throttle.NewSet(interval),
		pending:   make(map[string]struct{}),
	}
	if opts.AutoPair && !opts.Bridge.Paired() {
		m.pairing = true
		m.status = "Pairing: press the link button on the bridge"
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.bridge.Paired() {
		m.store.BeginLoading()
		return tea.Batch(fetchLightsCmd(m.ctx, m.bridge), m.spinner.Tick)
	}
	if m.pairing {
		return tea.Batch(pairCmd(m.ctx, m.bridge), m.spinner.Tick)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case lightsMsg:
		return m.handleLights(msg)

	case pairMsg:
		return m.handlePair(msg)

	case flushMsg:
		// Send whatever the control shows now, not the value seen when the
		// flush was armed.
		delete(m.pending, msg.id)
		bri, ok := m.store.Brightness(msg.id)
		if !ok {
			return m, nil
		}
		return m, setBrightnessCmd(m.ctx, m.bridge, msg.id, bri)

	case brightnessMsg:
		if msg.err != nil {
			m.logger.Warn("brightness update failed",
				slog.String("light", msg.id),
				slog.Int("bri", msg.bri),
				slog.String("error", msg.err.Error()),
			)
			return m, nil
		}
		m.logger.Debug("brightness updated", slog.String("light", msg.id), slog.Int("bri", msg.bri))
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.bridge.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Pair):
		return m.startPairing()

	case key.Matches(msg, m.keys.Offline):
		m.prefs.ShowOffline = !m.prefs.ShowOffline
		m.savePrefs()
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(m.visibleLights())-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(len(m.visibleLights())-1, 0)

	case key.Matches(msg, m.keys.DimmerFast):
		return m.adjustSelected(-5 * m.prefs.Step)
	case key.Matches(msg, m.keys.BrighterFast):
		return m.adjustSelected(5 * m.prefs.Step)
	case key.Matches(msg, m.keys.Dimmer):
		return m.adjustSelected(-m.prefs.Step)
	case key.Matches(msg, m.keys.Brighter):
		return m.adjustSelected(m.prefs.Step)
	case key.Matches(msg, m.keys.Off):
		return m.setSelected(0)
	case key.Matches(msg, m.keys.Full):
		return m.setSelected(hue.MaxBrightness)
	}

	return m, nil
}

// refresh starts a new listing, the equivalent of opening the menu.
func (m *Model) refresh() tea.Cmd {
	if !m.bridge.Paired() {
		m.setStatus("Not paired: press p, then the link button on the bridge", true)
		return nil
	}
	m.store.BeginLoading()
	return tea.Batch(fetchLightsCmd(m.ctx, m.bridge), m.spinner.Tick)
}

func (m Model) startPairing() (tea.Model, tea.Cmd) {
	if m.bridge.Paired() {
		m.setStatus("Already paired", false)
		return m, nil
	}
	if m.pairing {
		return m, nil
	}
	m.pairing = true
	m.setStatus("Pairing: press the link button on the bridge", false)
	return m, tea.Batch(pairCmd(m.ctx, m.bridge), m.spinner.Tick)
}

func (m Model) handleLights(msg lightsMsg) (tea.Model, tea.Cmd) {
	// A listing may carry an older level than one still waiting to be sent.
	local := make(map[string]int, len(m.pending))
	for id := range m.pending {
		if bri, ok := m.store.Brightness(id); ok {
			local[id] = bri
		}
	}
	m.store.Update(msg.lights, msg.err)
	for id, bri := range local {
		m.store.SetBrightness(id, bri)
	}

	if msg.err != nil {
		m.logger.Warn("list lights failed", slog.String("error", msg.err.Error()))
		if hue.IsUnauthorized(msg.err) {
			m.setStatus("Bridge rejected the configured username", true)
		} else {
			m.setStatus("Could not load lights", true)
		}
		m.throttles.Retain(nil)
		m.clampSelection()
		return m, nil
	}

	ids := make([]string, len(msg.lights))
	for i, l := range msg.lights {
		ids[i] = l.ID
	}
	// Each row's window starts when the row appears.
	m.throttles.Retain(ids)
	for _, id := range ids {
		m.throttles.Get(id)
	}
	m.logger.Info("listed lights", slog.Int("count", len(msg.lights)))
	m.setStatus("", false)
	m.clampSelection()
	return m, nil
}

func (m Model) handlePair(msg pairMsg) (tea.Model, tea.Cmd) {
	m.pairing = false
	switch {
	case msg.err == nil:
		m.logger.Info("paired with bridge", slog.String("host", m.host))
		m.setStatus("Paired with bridge", false)
		cmd := m.refresh()
		return m, cmd
	case hue.IsLinkButtonNotPressed(msg.err):
		m.setStatus("Link button not pressed: press it, then p to retry", true)
	default:
		m.logger.Warn("pairing failed", slog.String("error", msg.err.Error()))
		m.setStatus("Pairing failed", true)
	}
	return m, nil
}

func (m Model) adjustSelected(delta int) (tea.Model, tea.Cmd) {
	l, ok := m.selectedLight()
	if !ok {
		return m, nil
	}
	return m.drag(l.ID, l.Brightness+delta)
}

func (m Model) setSelected(bri int) (tea.Model, tea.Cmd) {
	l, ok := m.selectedLight()
	if !ok {
		return m, nil
	}
	return m.drag(l.ID, bri)
}

// drag applies a brightness change locally at once and arms at most one
// network flush per throttle window.
func (m Model) drag(id string, bri int) (tea.Model, tea.Cmd) {
	m.store.SetBrightness(id, bri)
	if m.throttles.Observe(id) {
		m.pending[id] = struct{}{}
		return m, flushCmd(id, m.interval)
	}
	return m, nil
}

func (m Model) visibleLights() []hue.Light {
	return m.store.Snapshot().Visible(m.prefs.ShowOffline)
}

func (m Model) selectedLight() (hue.Light, bool) {
	lights := m.visibleLights()
	if m.selectedRow < 0 || m.selectedRow >= len(lights) {
		return hue.Light{}, false
	}
	return lights[m.selectedRow], true
}

func (m *Model) clampSelection() {
	n := len(m.visibleLights())
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m Model) busy() bool {
	return m.pairing || m.store.Snapshot().Loading
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", slog.String("error", err.Error()))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
