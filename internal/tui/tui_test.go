package tui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/frippertronics/record-roll/internal/display"
	"github.com/frippertronics/record-roll/internal/model"
	"github.com/frippertronics/record-roll/internal/roll"
)

type fakeRoller struct {
	mu     sync.Mutex
	calls  int
	result *roll.Result
	err    error
}

func (f *fakeRoller) Roll(context.Context) (*roll.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result, f.err
}

type fakeSaver struct {
	saved []model.Record
}

func (f *fakeSaver) Save(rec model.Record, _ *model.Artwork) (string, error) {
	f.saved = append(f.saved, rec)
	return "/covers/" + rec.Caption() + ".jpg", nil
}

func testResult(t *testing.T, artist, album string, w, h int) *roll.Result {
	t.Helper()
	rec, err := model.NewRecord([]string{"1", artist, album, "", "", "", "", "42"})
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	art := &model.Artwork{URI: "https://img.example/42.jpg", Data: []byte{1}, Image: model.NewDecodedImage(src)}
	return &roll.Result{Record: rec, Artwork: art, Attempts: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// shown returns a model that has finished its first roll.
func shown(t *testing.T, opts Options) Model {
	t.Helper()
	m := NewModel(opts)
	m.ctrl.Start()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 12})
	m, cmd := update(t, m, RollDoneMsg{Result: testResult(t, "Can", "Tago Mago", 100, 100)})
	if cmd == nil {
		t.Fatal("expected a window title command")
	}
	return m
}

var leftPress = tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

func TestRollDone_ShowsCaption(t *testing.T) {
	m := shown(t, Options{})

	if got := m.Controller().Caption(); got != "Can - Tago Mago" {
		t.Errorf("Caption() = %q", got)
	}
	if m.Controller().State() != display.StateShowing {
		t.Errorf("State() = %v", m.Controller().State())
	}
	if !strings.Contains(m.View(), "Can - Tago Mago") {
		t.Error("View() does not contain the caption")
	}
}

func TestLeftPress_RollsOnce(t *testing.T) {
	roller := &fakeRoller{}
	m := shown(t, Options{Roller: roller})

	m, cmd := update(t, m, leftPress)
	if cmd == nil {
		t.Fatal("left press returned no command")
	}
	if !m.Controller().Rolling() {
		t.Error("Rolling() = false after left press")
	}

	m, cmd = update(t, m, leftPress)
	if cmd != nil {
		t.Error("second left press while rolling returned a command")
	}

	// run the roll itself
	if msg := m.rollCmd()(); msg == nil {
		t.Fatal("rollCmd returned nil")
	}
	if roller.calls != 1 {
		t.Errorf("roller called %d times, want 1", roller.calls)
	}
}

func TestMouse_IgnoredEvents(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
	}{
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}},
		{"left release", tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}},
		{"motion", tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}},
		{"wheel", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := shown(t, Options{})
			m, cmd := update(t, m, tt.msg)
			if cmd != nil {
				t.Error("expected no command")
			}
			if m.Controller().Rolling() {
				t.Error("Rolling() = true")
			}
		})
	}
}

func TestQuit_TerminatesAndCancels(t *testing.T) {
	m := shown(t, Options{Roller: &fakeRoller{}})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce tea.QuitMsg")
	}
	if m.Controller().State() != display.StateTerminated {
		t.Errorf("State() = %v", m.Controller().State())
	}
	if m.ctx.Err() == nil {
		t.Error("context not cancelled on quit")
	}

	if _, cmd := update(t, m, leftPress); cmd != nil {
		t.Error("left press after quit returned a command")
	}
}

func TestRollDone_Errors(t *testing.T) {
	t.Run("first roll fails", func(t *testing.T) {
		m := NewModel(Options{})
		m.ctrl.Start()
		m, cmd := update(t, m, RollDoneMsg{Err: roll.ErrGaveUp})
		if cmd == nil {
			t.Fatal("expected quit")
		}
		if !errors.Is(m.Err(), roll.ErrGaveUp) {
			t.Errorf("Err() = %v", m.Err())
		}
	})

	t.Run("later roll gives up", func(t *testing.T) {
		m := shown(t, Options{})
		m, _ = update(t, m, leftPress)
		m, cmd := update(t, m, RollDoneMsg{Err: roll.ErrGaveUp})
		if cmd != nil {
			t.Error("expected the viewer to keep running")
		}
		if m.Err() != nil {
			t.Errorf("Err() = %v", m.Err())
		}
		if got := m.Controller().Caption(); got != "Can - Tago Mago" {
			t.Errorf("Caption() = %q, want previous cover kept", got)
		}
		if m.Controller().Rolling() {
			t.Error("Rolling() = true after failure")
		}
	})

	t.Run("unauthorized", func(t *testing.T) {
		m := shown(t, Options{})
		m, _ = update(t, m, leftPress)
		m, cmd := update(t, m, RollDoneMsg{Err: roll.ErrUnauthorized})
		if cmd == nil {
			t.Fatal("expected quit")
		}
		if !errors.Is(m.Err(), roll.ErrUnauthorized) {
			t.Errorf("Err() = %v", m.Err())
		}
	})
}

func TestNotices(t *testing.T) {
	ch := make(chan roll.ProgressEvent, 1)
	m := NewModel(Options{Notices: ch})

	ch <- roll.ProgressEvent{Message: "No image! Re-rolling...", Level: roll.LevelWarning}
	msg := m.waitForNotice()()
	m, cmd := update(t, m, msg)
	if cmd == nil {
		t.Error("notice did not resubscribe")
	}
	if m.status.Message != "No image! Re-rolling..." {
		t.Errorf("status = %q", m.status.Message)
	}

	m, _ = update(t, m, NoticeMsg{Event: roll.ProgressEvent{Message: "Picked", Level: roll.LevelVerbose}})
	if m.status.Message != "No image! Re-rolling..." {
		t.Errorf("verbose notice replaced status: %q", m.status.Message)
	}

	close(ch)
	if msg := m.waitForNotice()(); msg != nil {
		t.Errorf("closed channel produced %T", msg)
	}
}

func TestSaveKey(t *testing.T) {
	saver := &fakeSaver{}
	m := shown(t, Options{Saver: saver})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if cmd == nil {
		t.Fatal("save returned no command")
	}
	m, _ = update(t, m, cmd())
	if len(saver.saved) != 1 || saver.saved[0].Caption() != "Can - Tago Mago" {
		t.Errorf("saved = %v", saver.saved)
	}
	if !strings.HasPrefix(m.status.Message, "Saved ") {
		t.Errorf("status = %q", m.status.Message)
	}
}

func TestRenderHalfBlocks_Dimensions(t *testing.T) {
	tests := []struct {
		w, h      int
		wantLines int
	}{
		{4, 4, 2},
		{4, 5, 3},
		{1, 1, 1},
	}
	for _, tt := range tests {
		out := RenderHalfBlocks(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)))
		lines := strings.Split(out, "\n")
		if len(lines) != tt.wantLines {
			t.Errorf("%dx%d: got %d lines, want %d", tt.w, tt.h, len(lines), tt.wantLines)
		}
		for i, line := range lines {
			if got := lipgloss.Width(line); got != tt.w {
				t.Errorf("%dx%d: line %d width = %d, want %d", tt.w, tt.h, i, got, tt.w)
			}
		}
	}

	if RenderHalfBlocks(image.NewRGBA(image.Rect(0, 0, 0, 0))) != "" {
		t.Error("empty image rendered non-empty output")
	}
}

func TestRenderPicture_FitsTerminal(t *testing.T) {
	m := shown(t, Options{})

	// 20x12 terminal leaves 10 rows, i.e. a 20x20 pixel box
	lines := strings.Split(m.picture, "\n")
	if len(lines) != 10 {
		t.Errorf("got %d lines, want 10", len(lines))
	}
	if got := lipgloss.Width(lines[0]); got != 20 {
		t.Errorf("width = %d, want 20", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 6})
	lines = strings.Split(m.picture, "\n")
	if len(lines) != 4 {
		t.Errorf("after resize got %d lines, want 4", len(lines))
	}
}
