// Package ui is the terminal front end: a grid over the current view with
// per-header filter boxes and sort toggles.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"checkreg/checkreg/internal/config"
	"checkreg/checkreg/internal/grid"
)

const headerHint = "Left click to search; Right click to sort"

// Options configure a Model.
type Options struct {
	// DefaultPath is opened by Load Data; if it does not exist a file
	// chooser is shown instead.
	DefaultPath string
	// LoadOnStart loads DefaultPath as soon as the program starts.
	LoadOnStart bool
	Colors      config.ColorConfig
	Hotkeys     map[string][]string
}

// loadMsg asks the model to load a file.
type loadMsg struct {
	path string
}

type Model struct {
	session     *grid.Session
	defaultPath string
	loadOnStart bool

	// Navigation and display
	cursorRow int
	cursorCol int
	viewportX int
	viewportY int
	width     int
	height    int
	renderer  *lipgloss.Renderer

	// Input modes. Each is nil unless open.
	search *headerSearch
	picker *filepicker.Model

	hoverHeader bool
	errMsg      string // shown until the next key press
	statusErr   string // replaces the status detail until the next success

	keys       keyMap
	help       help.Model
	typeColors map[grid.Kind]lipgloss.Color
	dimColors  map[grid.Kind]lipgloss.Color
}

func New(session *grid.Session, renderer *lipgloss.Renderer, opts Options) Model {
	typeColors, dimColors := applyConfigColors(opts.Colors, getDefaultColors(), getDefaultDimColors())
	hotkeys := applyConfigHotkeys(opts.Hotkeys, getDefaultHotkeys())

	return Model{
		session:     session,
		defaultPath: opts.DefaultPath,
		loadOnStart: opts.LoadOnStart,
		width:       80,
		height:      24,
		renderer:    renderer,
		keys:        createKeyMapFromConfig(hotkeys),
		help:        help.New(),
		typeColors:  typeColors,
		dimColors:   dimColors,
	}
}

func (m Model) Init() tea.Cmd {
	if m.loadOnStart && m.defaultPath != "" {
		path := m.defaultPath
		return func() tea.Msg { return loadMsg{path: path} }
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.adjustViewport()
		if m.picker != nil {
			var cmd tea.Cmd
			*m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil
	case loadMsg:
		m.load(msg.path)
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Directory listings and cursor blinks belong to whichever mode is open.
	var cmd tea.Cmd
	switch {
	case m.picker != nil:
		*m.picker, cmd = m.picker.Update(msg)
	case m.search != nil:
		m.search.input, cmd = m.search.input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An error message swallows the key that dismisses it.
	if m.errMsg != "" {
		m.errMsg = ""
		return m, nil
	}

	if m.picker != nil {
		if key.Matches(msg, m.keys.Cancel) {
			m.picker = nil
			return m, nil
		}
		var cmd tea.Cmd
		*m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.picker = nil
			m.load(path)
			return m, nil
		}
		return m, cmd
	}

	if m.search != nil {
		if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Cancel) {
			m.closeSearch()
			return m, nil
		}
		before := m.search.input.Value()
		var cmd tea.Cmd
		m.search.input, cmd = m.search.input.Update(msg)
		if after := m.search.input.Value(); after != before {
			m.applyFilter(m.search.column, after)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Load):
		return m, m.loadData()
	case key.Matches(msg, m.keys.Search):
		return m, m.openSearch(m.cursorCol)
	case key.Matches(msg, m.keys.Sort):
		m.sortColumn(m.cursorCol)
	case key.Matches(msg, m.keys.Reset):
		if m.session.Loaded() {
			m.session.Reset()
			m.statusErr = ""
			m.resetCursor()
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursorCol > 0 {
			m.cursorCol--
			m.adjustViewport()
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursorCol < m.columnCount()-1 {
			m.cursorCol++
			m.adjustViewport()
		}
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveRow(-m.maxRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveRow(m.maxRows())
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.picker != nil {
		return m, nil
	}

	col, onHeader := m.headerColumnAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.hoverHeader = onHeader
		return m, nil
	case tea.MouseActionPress:
	default:
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveRow(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveRow(1)
		return m, nil
	case tea.MouseButtonLeft, tea.MouseButtonRight:
	default:
		return m, nil
	}

	if m.errMsg != "" {
		m.errMsg = ""
		return m, nil
	}

	if m.search != nil {
		// Clicking into the open box keeps it; anything else blurs it.
		if onHeader && col == m.search.column && msg.Button == tea.MouseButtonLeft {
			return m, nil
		}
		m.closeSearch()
	}

	if !onHeader {
		return m, nil
	}
	m.cursorCol = col
	if msg.Button == tea.MouseButtonLeft {
		return m, m.openSearch(col)
	}
	m.sortColumn(col)
	return m, nil
}

// loadData loads the default path, or opens the file chooser when that
// path does not exist.
func (m *Model) loadData() tea.Cmd {
	if m.defaultPath != "" {
		if _, err := os.Stat(m.defaultPath); err == nil {
			m.load(m.defaultPath)
			return nil
		}
	}

	fp := filepicker.New()
	fp.CurrentDirectory = m.startDir()
	fp, _ = fp.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.picker = &fp
	return fp.Init()
}

func (m *Model) startDir() string {
	if m.defaultPath != "" {
		if dir := filepath.Dir(m.defaultPath); dir != "" {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m *Model) load(path string) {
	if err := m.session.Load(path); err != nil {
		m.handleError("loading data from '"+path+"'", err)
		return
	}
	m.search = nil
	m.statusErr = ""
	m.cursorCol = 0
	m.viewportX = 0
	m.resetCursor()
}

func (m *Model) openSearch(col int) tea.Cmd {
	if !m.session.Loaded() || col < 0 || col >= m.columnCount() {
		return nil
	}
	m.search = newHeaderSearch(col, m.columnWidth(col))
	return textinput.Blink
}

// closeSearch drops the filter box and shows the unfiltered table.
func (m *Model) closeSearch() {
	m.search = nil
	if m.session.Loaded() {
		m.session.Reset()
		m.statusErr = ""
		m.resetCursor()
	}
}

func (m *Model) applyFilter(col int, text string) {
	if err := m.session.Filter(col, text); err != nil {
		m.handleError("applying filter", err)
		return
	}
	m.statusErr = ""
	m.resetCursor()
}

func (m *Model) sortColumn(col int) {
	if !m.session.Loaded() {
		return
	}
	name := ""
	if col >= 0 && col < m.columnCount() {
		name = m.session.Canonical().Columns[col].Name
	}
	if _, err := m.session.Sort(col); err != nil {
		m.handleError(fmt.Sprintf("sorting column '%s'", name), err)
		return
	}
	m.statusErr = ""
	m.resetCursor()
}

// handleError logs err and shows its innermost message to the user.
func (m *Model) handleError(context string, err error) {
	log.Error().Stack().Err(err).Str("context", context).Msg("operation failed")

	msg := errors.Cause(err).Error()
	m.errMsg = fmt.Sprintf("An error occurred while %s:\n\n%s", context, msg)
	m.statusErr = msg
}

func (m *Model) resetCursor() {
	m.cursorRow = 0
	m.viewportY = 0
	if n := m.columnCount(); m.cursorCol >= n {
		m.cursorCol = max(n-1, 0)
	}
}

func (m *Model) moveRow(delta int) {
	rows := m.rowCount()
	if rows == 0 {
		return
	}
	m.cursorRow = min(max(m.cursorRow+delta, 0), rows-1)
	m.adjustViewport()
}

func (m Model) columnCount() int {
	if v := m.session.View(); v != nil {
		return len(v.Columns)
	}
	return 0
}

func (m Model) rowCount() int {
	return m.session.View().Len()
}

// maxRows is how many data rows fit under the header.
func (m Model) maxRows() int {
	// Table borders, header, separator, status and help lines.
	return max(m.height-7, 1)
}

func (m *Model) adjustViewport() {
	if m.columnCount() > 0 {
		startCol, endCol := m.calculateVisibleColumns()
		if m.cursorCol < startCol {
			m.viewportX = m.cursorCol
		} else if m.cursorCol >= endCol {
			m.viewportX = min(max(m.cursorCol-(endCol-startCol-1), 0), m.columnCount()-1)
		}
	}

	maxRows := m.maxRows()
	if m.cursorRow < m.viewportY {
		m.viewportY = m.cursorRow
	} else if m.cursorRow >= m.viewportY+maxRows {
		m.viewportY = max(m.cursorRow-maxRows+1, 0)
	}
}
