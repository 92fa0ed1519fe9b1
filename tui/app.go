package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"movie-catalog-cli/catalog"
	"movie-catalog-cli/logger"
	"movie-catalog-cli/model"
	"movie-catalog-cli/view"
)

const defaultDebounce = 400 * time.Millisecond

type appState int

const (
	stateBrowse appState = iota
	stateDetail
)

type focusArea int

const (
	focusGenres focusArea = iota
	focusSearch
	focusGrid
	focusCount
)

// ThemeStore persists the display mode between runs.
type ThemeStore interface {
	ReadMode() (model.ThemeMode, bool, error)
	WriteMode(mode model.ThemeMode) error
}

// Options wires the model's collaborators. Zero values fall back to the
// embedded catalog, no persistence, a discarding logger and a 400ms
// search debounce. A negative Debounce applies search edits on the next
// tick without waiting.
type Options struct {
	Movies      []model.Movie
	Preferences ThemeStore
	Logger      *logger.Logger
	Debounce    time.Duration
}

type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

type appModel struct {
	movies   []model.Movie
	prefs    ThemeStore
	log      *logger.Logger
	debounce time.Duration
	tick     tickFunc
	copyText func(string) error

	state appState
	focus focusArea

	width  int
	height int

	genres      []string
	checked     map[string]bool
	genreCursor int

	search    textinput.Model
	searchSeq int

	filtered   []model.Movie
	grid       view.GridView
	gridCursor int
	renders    int

	detail view.DetailView

	mode   model.ThemeMode
	styles styles
	status string
}

type searchDebounceMsg struct {
	seq int
}

type themeSavedMsg struct {
	mode model.ThemeMode
	err  error
}

type clipboardMsg struct {
	text string
	err  error
}

// New builds the interactive model. Startup follows a fixed order: genre
// controls, the initial (unfiltered) result, the grid, then the persisted
// display mode.
func New(opts Options) tea.Model {
	movies := opts.Movies
	if movies == nil {
		movies = catalog.Movies()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	debounce := opts.Debounce
	switch {
	case debounce < 0:
		debounce = 0
	case debounce == 0:
		debounce = defaultDebounce
	}

	m := appModel{
		movies:   movies,
		prefs:    opts.Preferences,
		log:      log.WithFields(map[string]any{"component": "tui"}),
		debounce: debounce,
		tick:     tea.Tick,
		copyText: clipboard.WriteAll,
		state:    stateBrowse,
		focus:    focusSearch,
		checked:  map[string]bool{},
		mode:     model.ThemeLight,
	}

	ti := textinput.New()
	ti.Placeholder = "Search by title..."
	ti.Prompt = "⌕ "
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()
	m.search = ti

	m.genres = catalog.AllGenres(m.movies)
	m.applyFilter()
	m.restoreTheme()

	return m
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampGridCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.applyFilter()
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Error(msg.err, "persist theme")
			m.status = fmt.Sprintf("Could not save theme: %v", msg.err)
			return m, nil
		}
		m.log.WithFields(map[string]any{"theme": msg.mode.String()}).Info("theme saved")
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.log.Error(msg.err, "copy to clipboard")
			m.status = fmt.Sprintf("Clipboard unavailable: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Copied %q", msg.text)
		return m, nil
	}

	if m.state == stateBrowse && m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+t":
		return m.toggleTheme()
	}

	if m.state == stateDetail {
		switch msg.String() {
		case "esc", "q", "backspace":
			m.closeDetail()
		case "y":
			return m, m.copyCmd(m.detail.Heading)
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	switch m.focus {
	case focusGenres:
		return m.handleGenreKey(msg)
	case focusGrid:
		return m.handleGridKey(msg)
	default:
		return m.handleSearchKey(msg)
	}
}

func (m appModel) handleGenreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.setFocus(focusSearch)
	case "up", "k":
		if m.genreCursor > 0 {
			m.genreCursor--
		}
	case "down", "j":
		if m.genreCursor < len(m.genres)-1 {
			m.genreCursor++
		}
	case " ", "enter", "x":
		m.toggleGenre(m.genreCursor)
	}
	return m, nil
}

func (m appModel) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.layout().cols
	count := len(m.grid.Cards)
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.setFocus(focusSearch)
	case "left", "h":
		if m.gridCursor > 0 {
			m.gridCursor--
		}
	case "right", "l":
		if m.gridCursor < count-1 {
			m.gridCursor++
		}
	case "up", "k":
		if m.gridCursor-cols >= 0 {
			m.gridCursor -= cols
		}
	case "down", "j":
		if m.gridCursor+cols < count {
			m.gridCursor += cols
		}
	case "enter", " ":
		m.openDetail(m.gridCursor)
	}
	return m, nil
}

func (m appModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.search.Value()
	if msg.Type == tea.KeyEsc {
		m.search.SetValue("")
	} else {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() == before {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.scheduleSearch())
	}
	if m.search.Value() == before {
		return m, nil
	}
	return m, m.scheduleSearch()
}

// scheduleSearch restarts the debounce window. Each call supersedes any
// tick already in flight, since only the latest sequence number is honoured.
func (m *appModel) scheduleSearch() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return m.tick(m.debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func (m appModel) setFocus(area focusArea) (tea.Model, tea.Cmd) {
	m.focus = area
	if area == focusSearch {
		return m, m.search.Focus()
	}
	m.search.Blur()
	return m, nil
}

func (m *appModel) toggleGenre(index int) {
	if index < 0 || index >= len(m.genres) {
		return
	}
	genre := m.genres[index]
	if m.checked[genre] {
		delete(m.checked, genre)
	} else {
		m.checked[genre] = true
	}
	m.genreCursor = index
	m.applyFilter()
}

// selection snapshots the current widget state into a filter value.
func (m appModel) selection() catalog.Selection {
	selected := make([]string, 0, len(m.checked))
	for _, genre := range m.genres {
		if m.checked[genre] {
			selected = append(selected, genre)
		}
	}
	return catalog.NewSelection(selected, m.search.Value())
}

func (m *appModel) applyFilter() {
	sel := m.selection()
	m.filtered = catalog.Filter(m.movies, sel)
	m.grid = view.Grid(m.filtered)
	m.renders++
	m.clampGridCursor()
	m.log.WithFields(map[string]any{
		"genres":  sel.Genres(),
		"keyword": sel.Keyword(),
		"matches": len(m.filtered),
	}).Debug("filter applied")
}

func (m *appModel) clampGridCursor() {
	if m.gridCursor >= len(m.grid.Cards) {
		m.gridCursor = len(m.grid.Cards) - 1
	}
	if m.gridCursor < 0 {
		m.gridCursor = 0
	}
}

// openDetail shows the overlay for the card at index. Cards and filtered
// results share indices, so the movie is taken directly from the result.
func (m *appModel) openDetail(index int) {
	if index < 0 || index >= len(m.filtered) {
		return
	}
	m.gridCursor = index
	m.detail = view.Detail(m.filtered[index])
	m.state = stateDetail
	m.search.Blur()
	m.status = ""
}

func (m *appModel) closeDetail() {
	m.state = stateBrowse
	m.detail = view.DetailView{}
	if m.focus == focusSearch {
		m.search.Focus()
	}
}

func (m *appModel) restoreTheme() {
	mode := model.ThemeLight
	if m.prefs != nil {
		stored, ok, err := m.prefs.ReadMode()
		if err != nil {
			m.log.Error(err, "read theme preference")
		} else if ok {
			mode = stored
		}
	}
	m.applyTheme(mode)
}

func (m *appModel) applyTheme(mode model.ThemeMode) {
	m.mode = model.ParseThemeMode(string(mode))
	m.styles = newStyles(m.mode)
}

func (m appModel) toggleTheme() (tea.Model, tea.Cmd) {
	m.applyTheme(m.mode.Toggle())
	m.status = fmt.Sprintf("%s mode", strings.ToUpper(m.mode.String()[:1])+m.mode.String()[1:])
	return m, m.saveThemeCmd(m.mode)
}

func (m appModel) saveThemeCmd(mode model.ThemeMode) tea.Cmd {
	prefs := m.prefs
	if prefs == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{mode: mode, err: prefs.WriteMode(mode)}
	}
}

func (m appModel) copyCmd(text string) tea.Cmd {
	write := m.copyText
	return func() tea.Msg {
		return clipboardMsg{text: text, err: write(text)}
	}
}
