// Package tui is the interactive editor for the dashboard: a field list on the left,
// the derived health panel on the right.
package tui

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/nestegg/internal/common"
	"github.com/Veraticus/nestegg/internal/dashboard"
	"github.com/Veraticus/nestegg/internal/model"
	"github.com/Veraticus/nestegg/internal/tui/themes"
)

// editTimeout bounds a single save.
const editTimeout = 5 * time.Second

// Model holds the editor state.
type Model struct {
	dash         *dashboard.Dashboard
	theme        themes.Theme
	clipboard    func(string) error
	keymap       KeyMap
	status       string
	fields       []model.Field
	help         help.Model
	input        textinput.Model
	width        int
	height       int
	cursor       int
	offset       int
	statusID     int
	statusErr    bool
	editing      bool
	confirmReset bool
	quitting     bool
}

func newModel(dash *dashboard.Dashboard, cfg Config) Model {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 200

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	return Model{
		dash:      dash,
		theme:     cfg.Theme,
		clipboard: cfg.Clipboard,
		keymap:    DefaultKeyMap(),
		fields:    model.Fields(),
		help:      h,
		input:     input,
		width:     cfg.Width,
		height:    cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()

	case copiedMsg:
		if msg.err != nil {
			cmd = m.setError("copy failed: " + msg.err.Error())
		} else {
			cmd = m.setStatus("copied " + strconv.Itoa(msg.bytes) + " bytes of JSON")
		}

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.statusErr = false
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.ForceQuit):
			m.quitting = true
			cmd = tea.Quit
		case m.editing:
			cmd = m.updateEditing(msg)
		default:
			cmd = m.updateBrowsing(msg)
		}
	}
	return m, cmd
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, m.keymap.Reset) {
		m.confirmReset = false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.move(-1)
	case key.Matches(msg, m.keymap.Down):
		m.move(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.move(-m.listHeight())
	case key.Matches(msg, m.keymap.PageDown):
		m.move(m.listHeight())
	case key.Matches(msg, m.keymap.Home):
		m.move(-len(m.fields))
	case key.Matches(msg, m.keymap.End):
		m.move(len(m.fields))
	case key.Matches(msg, m.keymap.Prev):
		return m.cycle(-1)
	case key.Matches(msg, m.keymap.Next):
		return m.cycle(1)
	case key.Matches(msg, m.keymap.Edit):
		return m.startEditing()
	case key.Matches(msg, m.keymap.Reset):
		if !m.confirmReset {
			m.confirmReset = true
			return m.setStatus("press R again to reset every field to its default")
		}
		m.confirmReset = false
		ctx, cancel := context.WithTimeout(context.Background(), editTimeout)
		defer cancel()
		m.dash.Reset(ctx)
		return m.setStatus("reset to defaults")
	case key.Matches(msg, m.keymap.Copy):
		return m.copyJSON()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.scrollToCursor()
	}
	return nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.stopEditing()
		return nil
	case key.Matches(msg, m.keymap.Save):
		f := m.current()
		ctx, cancel := context.WithTimeout(context.Background(), editTimeout)
		defer cancel()
		if err := m.dash.SetFieldString(ctx, f.Path, m.input.Value()); err != nil {
			return m.setError(describe(err))
		}
		m.stopEditing()
		return m.setStatus("saved " + f.Label)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) startEditing() tea.Cmd {
	f := m.current()
	if f.Kind == model.KindChoice || f.Kind == model.KindBool {
		return m.cycle(1)
	}
	if m.plannedLocked(f) {
		return m.setError(describe(dashboard.ErrDiscretionaryLocked))
	}
	m.editing = true
	m.input.SetValue(editValue(f, f.Value(m.dash.State())))
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) cycle(step int) tea.Cmd {
	f := m.current()
	if f.Kind != model.KindChoice && f.Kind != model.KindBool {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), editTimeout)
	defer cancel()
	if err := m.dash.Cycle(ctx, f.Path, step); err != nil {
		return m.setError(describe(err))
	}
	return nil
}

func (m Model) copyJSON() tea.Cmd {
	data, err := m.dash.Export(dashboard.FormatJSON)
	write := m.clipboard
	return func() tea.Msg {
		if err != nil {
			return copiedMsg{err: err}
		}
		if err := write(string(data)); err != nil {
			return copiedMsg{err: err}
		}
		return copiedMsg{bytes: len(data)}
	}
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.statusID++
	m.status = s
	m.statusErr = false
	return clearStatusAfter(m.statusID)
}

func (m *Model) setError(s string) tea.Cmd {
	m.statusID++
	m.status = s
	m.statusErr = true
	return clearStatusAfter(m.statusID)
}

func clearStatusAfter(id int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m *Model) move(delta int) {
	m.cursor = int(common.Clamp(float64(m.cursor+delta), 0, float64(len(m.fields)-1)))
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = int(common.Clamp(float64(m.offset), 0, float64(max(0, len(m.fields)-h))))
}

func (m Model) current() model.Field {
	return m.fields[m.cursor]
}

func (m Model) plannedLocked(f model.Field) bool {
	return isPlanned(f) && m.dash.PlannedLocked()
}

func isPlanned(f model.Field) bool {
	return strings.HasPrefix(f.Path, model.SectionDiscretionary+".planned.")
}

// editValue is the text placed in the input when editing starts. Percentages are shown as "3%".
func editValue(f model.Field, v any) string {
	switch f.Kind {
	case model.KindMoney, model.KindCount:
		n, _ := v.(float64)
		return strconv.FormatFloat(n, 'f', -1, 64)
	case model.KindPercent:
		n, _ := v.(float64)
		return strconv.FormatFloat(math.Round(n*1e6)/1e4, 'f', -1, 64) + "%"
	}
	s, _ := v.(string)
	return s
}

func describe(err error) string {
	switch {
	case errors.Is(err, dashboard.ErrDiscretionaryLocked):
		return "planned amounts are locked while a gate is red"
	case errors.Is(err, model.ErrInvalidValue):
		return err.Error()
	}
	return "error: " + err.Error()
}
