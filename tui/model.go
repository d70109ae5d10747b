// ABOUTME: Bubble Tea model for the interactive x-sheet editor
// ABOUTME: Wires the animation, pencil test player, lightbox panel and sheet persistence together

package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"xsheet/animation"
	"xsheet/config"
	"xsheet/frames"
	"xsheet/playback"
	"xsheet/sheet"
)

// UI layout constants
const (
	paramPanelWidth   = 34
	panelPadding      = 4
	minViewportWidth  = 40
	minViewportHeight = 5
	statusBarHeight   = 1
	helpHeight        = 1
	headerHeight      = 3 // Title, column header, blank line
	totalUIChrome     = headerHeight + statusBarHeight + helpHeight + 2
	statusMsgLifetime = 5 * time.Second
)

// panel identifies which side of the screen receives keys
type panel int

const (
	sheetPanel panel = iota
	lightboxPanel
)

// promptKind is the pending text input, if any
type promptKind int

const (
	promptNone promptKind = iota
	promptDescription
	promptInsert
	promptAppend
	promptRemove
)

// String returns the prompt label
func (p promptKind) String() string {
	switch p {
	case promptDescription:
		return "Description: "
	case promptInsert:
		return "Insert frames: "
	case promptAppend:
		return "Append frames: "
	case promptRemove:
		return "Remove frames: "
	}

	return ""
}

// configMsg carries preferences reloaded from disk
type configMsg config.Config

// tickMsg advances the pencil test. Ticks from an earlier run are ignored.
type tickMsg struct {
	id int
}

// model holds the TUI state
type model struct {
	// Dependencies
	deps   Dependencies
	logger *slog.Logger

	// Document
	anim           *animation.Animation
	player         *playback.Controller
	sink           *canvasSink
	soundtrack     *sheet.Soundtrack
	soundtrackPath string
	framerate      *int // Pointer so the framerate parameter stays bound across model copies
	sheetPath      string
	dryRun         bool

	// Preferences
	localConfig *config.Config // Lightbox parameters point into this
	paramMgr    *ParamManager
	configDirty bool

	// UI state
	width        int
	height       int
	quitting     bool
	modified     bool
	statusMsg    string
	statusMsgAge time.Time
	focusedPanel panel
	viewport     viewport.Model
	input        textinput.Model
	prompt       promptKind
	tickID       int
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	NextKey  key.Binding
	PrevKey  key.Binding
	NextCel  key.Binding
	PrevCel  key.Binding
	// Frame editing
	ToggleKey   key.Binding
	ToggleSkip  key.Binding
	AddCel      key.Binding
	RemoveCel   key.Binding
	Describe    key.Binding
	Insert      key.Binding
	Append      key.Binding
	Delete      key.Binding
	Cut         key.Binding
	Copy        key.Binding
	Paste       key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Play        key.Binding
	Stop        key.Binding
	Save        key.Binding
	Toggle      key.Binding
	Reset       key.Binding
	Tab         key.Binding
	Quit        key.Binding
	Confirm     key.Binding
	CancelInput key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous frame"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next frame"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "decrease"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "increase"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first frame"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last frame"),
	),
	NextKey: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next key"),
	),
	PrevKey: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous key"),
	),
	NextCel: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "next cel"),
	),
	PrevCel: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "previous cel"),
	),
	ToggleKey: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "key frame"),
	),
	ToggleSkip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip in lightbox"),
	),
	AddCel: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "add cel"),
	),
	RemoveCel: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "remove cel"),
	),
	Describe: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "describe"),
	),
	Insert: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "insert"),
	),
	Append: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "append"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "remove"),
	),
	Cut: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cut cel"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy cel"),
	),
	Paste: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "paste cel"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Play: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause"),
	),
	Stop: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "stop"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("t", "enter"),
		key.WithHelp("t", "toggle category"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset lightbox"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
	),
	CancelInput: key.NewBinding(
		key.WithKeys("esc"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	disabledParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Padding(0, 1)

	sheetHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	keyFrameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))
)

// Run opens the sheet at opts.SheetPath (or starts a new one) and runs the editor
func Run(opts Options, deps Dependencies) error {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	cfg := deps.Config.Get()

	file, err := sheet.Load(opts.SheetPath)
	if errors.Is(err, fs.ErrNotExist) {
		deps.Logger.Info("starting a new sheet", slog.String("path", opts.SheetPath))
		file = sheet.New(cfg.Sheet.DefaultLength, cfg.Sheet.Framerate)
	} else if err != nil {
		return err
	}

	m, err := initModel(file, opts, deps)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel builds the editor state for file
func initModel(file *sheet.File, opts Options, deps Dependencies) (model, error) {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	if deps.SaveSheet == nil {
		deps.SaveSheet = sheet.Save
	}

	tl, doc, err := file.Build()
	if err != nil {
		return model{}, err
	}

	cfg := deps.Config.Get()
	localCfg := cfg

	framerate := file.Framerate
	if framerate <= 0 {
		framerate = cfg.Sheet.Framerate
	}

	sink := &canvasSink{logger: deps.Logger}

	anim := animation.New(tl, doc, sink, cfg.Sheet.UndoHistory)
	anim.SetPlayLightbox(cfg.Sheet.PlayLightbox)
	anim.ApplyLightbox(cfg.Lightbox)

	var soundtrack *sheet.Soundtrack
	if file.Soundtrack != "" {
		soundtrack, err = sheet.ReadSoundtrack(file.Soundtrack, filepath.Dir(opts.SheetPath))
		if err != nil {
			deps.Logger.Warn("soundtrack unavailable",
				slog.String("path", file.Soundtrack),
				slog.String("error", err.Error()))
		}
	}

	input := textinput.New()
	input.CharLimit = 64

	m := model{
		deps:           deps,
		logger:         deps.Logger,
		anim:           anim,
		player:         playback.New(anim, cfg.Sheet.PlayFromFirstFrame),
		sink:           sink,
		soundtrack:     soundtrack,
		soundtrackPath: file.Soundtrack,
		framerate:      &framerate,
		sheetPath:      opts.SheetPath,
		dryRun:         opts.DryRun,
		localConfig:    &localCfg,
		focusedPanel:   sheetPanel,
		viewport:       viewport.New(minViewportWidth*2, minViewportHeight*4),
		input:          input,
	}

	m.paramMgr = NewParamManager(lightboxParams(m.localConfig, m.framerate))
	m.updateViewportContent()

	return m, nil
}

// Init starts listening for preference reloads
func (m model) Init() tea.Cmd {
	return waitForConfig(m.deps.Reloads)
}

// waitForConfig blocks until the watcher delivers new preferences
func waitForConfig(reloads <-chan config.Config) tea.Cmd {
	if reloads == nil {
		return nil
	}

	return func() tea.Msg {
		cfg, ok := <-reloads
		if !ok {
			return nil
		}

		return configMsg(cfg)
	}
}

// scheduleTick waits one frame at the sheet framerate
func (m model) scheduleTick() tea.Cmd {
	id := m.tickID

	return tea.Tick(playback.Interval(*m.framerate), func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// setStatusMsg shows msg in the status bar for a few seconds
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// report shows err in the status bar. Returns true if there was an error.
func (m *model) report(action string, err error) bool {
	if err == nil {
		return false
	}

	m.logger.Debug("edit rejected", slog.String("action", action), slog.String("error", err.Error()))
	m.setStatusMsg(fmt.Sprintf("%s: %v", action, err))

	return true
}

// edit runs an undoable change and marks the sheet modified on success
func (m *model) edit(action string, err error) {
	if m.report(action, err) {
		return
	}

	m.modified = true
	m.updateViewportContent()
}

// navigate runs a cursor move
func (m *model) navigate(action string, err error) {
	if m.report(action, err) {
		return
	}

	m.updateViewportContent()
}

// ensureCursorVisible scrolls the sheet so the cursor row is on screen
func (m *model) ensureCursorVisible() {
	vm := NewViewportManager(m.viewport.Height, m.anim.Cursor(), m.anim.Len())
	m.viewport.SetYOffset(vm.CalculateOffset())
}

// syncLightboxFlags copies the timeline's category switches back into the
// local preferences after undo or redo touched them
func (m *model) syncLightboxFlags() {
	lb := m.anim.Timeline().Lightbox()

	for _, c := range frames.Categories {
		m.localConfig.Lightbox.SetEnabled(c, lb.Setting(c).Active)
	}
}

// applyLocalConfig pushes the edited preferences to the animation and the shared config
func (m *model) applyLocalConfig() {
	m.anim.ApplyLightbox(m.localConfig.Lightbox)
	m.deps.Config.Update(*m.localConfig)
	m.configDirty = true
	m.updateViewportContent()
}

// save writes the sheet unless running dry
func (m *model) save() error {
	if m.dryRun {
		return nil
	}

	f, err := sheet.FromTimeline(m.anim.Timeline(), m.anim.Layers(), *m.framerate)
	if err != nil {
		return fmt.Errorf("failed to capture sheet: %w", err)
	}

	f.Soundtrack = m.soundtrackPath

	if err := m.deps.SaveSheet(m.sheetPath, f); err != nil {
		return err
	}

	m.modified = false
	m.logger.Info("sheet saved",
		slog.String("path", m.sheetPath),
		slog.Int("frames", len(f.Frames)),
		slog.Int("layers", len(f.Layers)))

	return nil
}

// saveConfig writes edited preferences unless running dry
func (m *model) saveConfig() error {
	if m.dryRun || !m.configDirty || m.deps.ConfigPath == "" {
		return nil
	}

	if err := config.SaveConfig(m.deps.ConfigPath, *m.localConfig); err != nil {
		return err
	}

	m.configDirty = false

	return nil
}

// truncate shortens s to maxLen runes, adding an ellipsis
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 1 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-1]) + "…"
}
