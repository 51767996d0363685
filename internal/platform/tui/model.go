package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ascent/internal/config"
	"github.com/vovakirdan/tui-ascent/internal/core"
	"github.com/vovakirdan/tui-ascent/internal/level"
	"github.com/vovakirdan/tui-ascent/internal/registry"
	"github.com/vovakirdan/tui-ascent/internal/storage"
)

// noticeDuration is how long a status notice stays on screen.
const noticeDuration = 2 * time.Second

// Options configures a level session.
type Options struct {
	Store     *storage.Store // Optional; runs and edits are not persisted without it
	Logger    *log.Logger
	Input     config.InputConfig
	Watcher   *level.Watcher // Optional; reloads the level when WatchFile changes
	WatchFile string
}

// reloadMsg carries a level file that changed on disk.
type reloadMsg struct {
	path  string
	level level.Level
	err   error
}

// Model is the Bubble Tea model for playing and editing one level.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	opts        Options
	logger      *log.Logger
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	keys        *KeyState
	clock       *frameClock
	touch       core.TouchState // Held on-screen control, until the mouse is released
	inputFrame  core.InputFrame
	gameState   core.GameState
	notice      string
	noticeUntil time.Time
	quitting    bool
	backToMenu  bool
	runSaved    bool // Whether the current finished run has been recorded
}

// NewModel creates a new Bubble Tea model for the given level.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Input.KeyHoldMs <= 0 {
		opts.Input = config.DefaultAscentConfig().Input
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		keys:       NewKeyState(opts.Input),
		clock:      newFrameClock(cfg.TickRate),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the level and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForReload(m.opts.Watcher, m.opts.WatchFile))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case reloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveLevel()
		return m, nil
	case "ctrl+t":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack {
		if m.gameState.Paused || m.gameState.Finished || m.gameState.Editing {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Movement keys are sampled on the next tick. In the editor up and
	// down only scroll.
	if !m.gameState.Editing {
		m.keys.Press(msg.String(), time.Now())
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse routes presses to the editor in edit mode and to the
// on-screen controls otherwise.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.gameState.Editing {
		if ed, ok := m.game.(registry.Editable); ok && msg.Action == tea.MouseActionPress {
			m.editorClick(ed, msg)
		}
		return m, nil
	}

	t, ok := m.game.(registry.Touchable)
	if !ok {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		touch, hit := t.TouchAt(msg.X, msg.Y)
		if !hit {
			touch = core.TouchState{}
		}
		m.touch = touch
	case tea.MouseActionRelease:
		m.touch = core.TouchState{}
	}
	return m, nil
}

func (m *Model) editorClick(ed registry.Editable, msg tea.MouseMsg) {
	click := registry.Click{X: msg.X, Y: msg.Y, Ctrl: msg.Ctrl, Alt: msg.Alt}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		click.Wheel = -1
	case tea.MouseButtonWheelDown:
		click.Wheel = 1
	case tea.MouseButtonRight:
		click.Right = true
	case tea.MouseButtonLeft:
	default:
		return
	}
	if err := ed.Click(click); err != nil {
		m.logger.Debug("editor click rejected", "x", msg.X, "y", msg.Y, "err", err)
	}
}

// handleResize processes window resize events. The run is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick samples input and advances the level by the wall time since
// the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.clock.next(now)
	in := core.InputSnapshot{
		Keyboard: m.keys.Snapshot(now),
		Touch:    m.touch,
	}

	result := m.game.Step(dt, in, m.inputFrame)
	m.gameState = result.State

	// Time spent outside play is not simulated
	if m.gameState.Paused || m.gameState.Editing || m.gameState.Finished {
		m.clock.reset()
	}
	if m.gameState.Editing {
		m.keys.Release()
	}

	// Record a finished run once
	if m.gameState.Finished && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	} else if !m.gameState.Finished {
		m.runSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleReload swaps in a level file that changed on disk.
func (m Model) handleReload(msg reloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.opts.Watcher, m.opts.WatchFile)
	if msg.err != nil {
		m.logger.Warn("level reload failed", "path", msg.path, "err", msg.err)
		m.setNotice(fmt.Sprintf("reload failed: %v", msg.err))
		return m, next
	}
	if ed, ok := m.game.(registry.Editable); ok {
		ed.Reload(msg.level)
		m.keys.Release()
		m.clock.reset()
		m.runSaved = false
		m.logger.Info("level reloaded", "path", msg.path, "name", msg.level.Name)
		m.setNotice("reloaded " + filepath.Base(msg.path))
	}
	return m, next
}

func (m *Model) saveRun() {
	if m.opts.Store == nil {
		return
	}
	st := m.gameState
	if _, err := m.opts.Store.SaveRun(m.game.ID(), st.Ticks, st.Deaths, st.ElapsedMs); err != nil {
		m.logger.Error("saving run", "level", m.game.ID(), "err", err)
		return
	}
	m.logger.Info("run recorded", "level", m.game.ID(), "elapsed_ms", st.ElapsedMs, "deaths", st.Deaths)
}

// saveLevel stores the edited level in the database.
func (m *Model) saveLevel() {
	ed, ok := m.game.(registry.Editable)
	if !ok {
		return
	}
	if m.opts.Store == nil {
		m.setNotice("no database configured")
		return
	}
	design := ed.Design()
	if err := m.opts.Store.SaveLevel(design); err != nil {
		m.logger.Error("saving level", "name", design.Name, "err", err)
		m.setNotice(fmt.Sprintf("save failed: %v", err))
		return
	}
	m.setNotice(fmt.Sprintf("saved %q", design.Name))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Error("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".ascent", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("screenshot", "err", err)
		return
	}
	m.setNotice("screenshot " + filepath.Base(path))
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = time.Now().Add(noticeDuration)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.notice != "" && time.Now().Before(m.noticeUntil) && m.screen.Height() > 2 {
		m.screen.DrawTextCentered(1, " "+m.notice+" ")
	}
	return RenderScreen(m.screen)
}

// BackToMenu reports whether the player left the level for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// waitForReload blocks until the watched level file changes.
func waitForReload(w *level.Watcher, file string) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		errs := w.Errors
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return nil
				}
				if file != "" && !sameFile(path, file) {
					continue
				}
				l, err := level.LoadFile(path)
				return reloadMsg{path: path, level: l, err: err}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				return reloadMsg{err: err}
			}
		}
	}
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// Run plays a level until the player quits or goes back.
// Returns true when the player asked for the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // On-screen controls and the editor
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
