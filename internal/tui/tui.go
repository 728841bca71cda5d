// Package tui provides the Bubble Tea viewer for record-roll.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/frippertronics/record-roll/internal/catalog"
	"github.com/frippertronics/record-roll/internal/display"
	ioutils "github.com/frippertronics/record-roll/internal/io"
	"github.com/frippertronics/record-roll/internal/model"
	"github.com/frippertronics/record-roll/internal/roll"
	"go.uber.org/zap"
)

// Styles for the TUI
var (
	captionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// chromeLines is the number of lines below the image: status and help.
const chromeLines = 2

// Roller runs one roll.
type Roller interface {
	Roll(ctx context.Context) (*roll.Result, error)
}

// Saver writes the current cover to disk.
type Saver interface {
	Save(rec model.Record, art *model.Artwork) (string, error)
}

// Options configure the viewer.
type Options struct {
	// Context bounds every roll. Defaults to context.Background().
	Context context.Context
	Roller  Roller

	// Saver is optional; without it the save key does nothing.
	Saver Saver

	// Notices streams roll progress into the status line.
	Notices <-chan roll.ProgressEvent

	Images  *ioutils.ImageService
	Logger  *zap.Logger
	Verbose bool
}

// LogEntry is a status line message.
type LogEntry struct {
	Message string
	Level   roll.ProgressLevel
}

// Model is the Bubble Tea model for the viewer.
type Model struct {
	ctrl    *display.Controller
	roller  Roller
	saver   Saver
	notices <-chan roll.ProgressEvent
	images  *ioutils.ImageService
	log     *zap.Logger
	verbose bool

	ctx    context.Context
	cancel context.CancelFunc

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	artwork *model.Artwork
	picture string
	status  LogEntry
	err     error

	width  int
	height int
}

// Message types
type (
	// RollDoneMsg is sent when a roll finishes.
	RollDoneMsg struct {
		Result *roll.Result
		Err    error
	}

	// NoticeMsg carries one progress event from the roll manager.
	NoticeMsg struct {
		Event roll.ProgressEvent
	}

	// SavedMsg is sent when a cover was written (or failed to be).
	SavedMsg struct {
		Path string
		Err  error
	}
)

// NewModel creates a new viewer model.
func NewModel(opts Options) Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	if opts.Images == nil {
		opts.Images = ioutils.NewImageService()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	return Model{
		ctrl:    display.NewController(),
		roller:  opts.Roller,
		saver:   opts.Saver,
		notices: opts.Notices,
		images:  opts.Images,
		log:     opts.Logger,
		verbose: opts.Verbose,
		ctx:     ctx,
		cancel:  cancel,
		spinner: sp,
		help:    help.New(),
		keys:    DefaultKeyMap(),
	}
}

// Controller exposes the display state machine.
func (m Model) Controller() *display.Controller {
	return m.ctrl
}

// Err returns the fatal error that ended the viewer, if any.
func (m Model) Err() error {
	return m.err
}

// Init requests the first roll.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForNotice()}
	if m.ctrl.Start() == display.ActionRoll {
		cmds = append(cmds, m.rollCmd(), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.picture = m.renderPicture()
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		return m.handle(display.MousePress{Window: m.ctrl.ID(), Button: mouseButton(msg.Button)})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.handle(display.CloseRequested{Window: m.ctrl.ID()})
		case key.Matches(msg, m.keys.Roll):
			return m.handle(display.MousePress{Window: m.ctrl.ID(), Button: display.ButtonLeft})
		case key.Matches(msg, m.keys.Save):
			return m, m.saveCmd()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Rolling() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NoticeMsg:
		if msg.Event.Level != roll.LevelVerbose || m.verbose {
			m.status = LogEntry{Message: msg.Event.Message, Level: msg.Event.Level}
		}
		return m, m.waitForNotice()

	case RollDoneMsg:
		return m.rollDone(msg)

	case SavedMsg:
		if msg.Err != nil {
			m.log.Error("save cover", zap.Error(msg.Err))
			m.status = LogEntry{Message: msg.Err.Error(), Level: roll.LevelError}
		} else {
			m.log.Info("cover saved", zap.String("path", msg.Path))
			m.status = LogEntry{Message: "Saved " + msg.Path, Level: roll.LevelSuccess}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handle(ev display.Event) (tea.Model, tea.Cmd) {
	switch m.ctrl.Handle(ev) {
	case display.ActionRoll:
		m.status = LogEntry{Message: "Rolling...", Level: roll.LevelInfo}
		return m, tea.Batch(m.rollCmd(), m.spinner.Tick)
	case display.ActionQuit:
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) rollDone(msg RollDoneMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.State() == display.StateTerminated {
		return m, nil
	}

	if msg.Err != nil {
		m.ctrl.Fail()
		if errors.Is(msg.Err, context.Canceled) {
			return m, tea.Quit
		}
		m.log.Error("roll failed", zap.Error(msg.Err))
		if fatal(msg.Err) || m.artwork == nil {
			m.err = msg.Err
			m.cancel()
			return m, tea.Quit
		}
		m.status = LogEntry{Message: msg.Err.Error(), Level: roll.LevelError}
		return m, nil
	}

	m.ctrl.Show(msg.Result.Record)
	m.artwork = msg.Result.Artwork
	m.picture = m.renderPicture()
	m.status = LogEntry{}
	return m, tea.SetWindowTitle(m.ctrl.Caption())
}

// fatal errors end the viewer even when a cover is already on screen.
func fatal(err error) bool {
	return errors.Is(err, roll.ErrUnauthorized) || errors.Is(err, catalog.ErrEmptyCatalog)
}

// rollCmd runs a roll in the background.
func (m Model) rollCmd() tea.Cmd {
	ctx, roller := m.ctx, m.roller
	return func() tea.Msg {
		if roller == nil {
			return RollDoneMsg{Err: fmt.Errorf("no roller configured")}
		}
		result, err := roller.Roll(ctx)
		return RollDoneMsg{Result: result, Err: err}
	}
}

// waitForNotice blocks until the next progress event.
func (m Model) waitForNotice() tea.Cmd {
	ch := m.notices
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Event: event}
	}
}

func (m Model) saveCmd() tea.Cmd {
	rec, ok := m.ctrl.Current()
	if m.saver == nil || !ok || m.artwork == nil {
		return nil
	}
	saver, art := m.saver, m.artwork
	return func() tea.Msg {
		path, err := saver.Save(rec, art)
		return SavedMsg{Path: path, Err: err}
	}
}

// imageArea returns the space for the cover in pixels.
func (m Model) imageArea() (int, int) {
	rows := max(m.height-chromeLines, 1)
	return m.width, rows * 2
}

func (m Model) renderPicture() string {
	if m.artwork == nil || m.artwork.Image == nil || m.width <= 0 {
		return ""
	}
	w, h := m.imageArea()
	return RenderHalfBlocks(m.images.Fit(m.artwork.Image, w, h))
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	rows := max(m.height-chromeLines, 1)
	body := m.picture
	if body == "" {
		body = m.spinner.View() + " " + infoStyle.Render("Rolling...")
	}
	if m.width > 0 {
		body = lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, body)
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) statusLine() string {
	var parts []string
	if caption := m.ctrl.Caption(); caption != "" {
		parts = append(parts, captionStyle.Render(caption))
	}
	if m.ctrl.Rolling() && m.picture != "" {
		parts = append(parts, m.spinner.View())
	}
	if m.status.Message != "" {
		parts = append(parts, renderLog(m.status))
	}
	return strings.Join(parts, "  ")
}

func renderLog(entry LogEntry) string {
	var style lipgloss.Style
	prefix := "•"
	switch entry.Level {
	case roll.LevelError:
		style = errorStyle
		prefix = "✗"
	case roll.LevelWarning:
		style = warningStyle
		prefix = "!"
	case roll.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case roll.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + entry.Message)
}

func mouseButton(b tea.MouseButton) display.Button {
	switch b {
	case tea.MouseButtonLeft:
		return display.ButtonLeft
	case tea.MouseButtonMiddle:
		return display.ButtonMiddle
	case tea.MouseButtonRight:
		return display.ButtonRight
	}
	return 0
}

// Run starts the viewer and blocks until the window is closed.
func Run(opts Options) error {
	m := NewModel(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
			return nil
		}
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
