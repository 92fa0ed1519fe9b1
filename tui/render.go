package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"movie-catalog-cli/view"
)

const (
	cardInnerWidth = 22
	cardLines      = 3
	cardWidth      = cardInnerWidth + 2
	cardHeight     = cardLines + 2
	cardGap        = 1

	headerHeight    = 2
	searchHeight    = 3
	genreMinInner   = 14
	overlayMaxWidth = 64

	fallbackWidth  = 100
	fallbackHeight = 30
)

// screenLayout holds the geometry shared by View and the mouse handler.
// All coordinates are zero-based terminal cells.
type screenLayout struct {
	width      int
	height     int
	bodyTop    int
	genreWidth int
	gridLeft   int
	cols       int
}

func (m appModel) layout() screenLayout {
	width, height := m.width, m.height
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}

	inner := genreMinInner
	for _, genre := range m.genres {
		if w := lipgloss.Width(genre) + 4; w > inner {
			inner = w
		}
	}
	genreWidth := inner + 4
	gridLeft := genreWidth + cardGap

	cols := (width - gridLeft + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		cols = 1
	}

	return screenLayout{
		width:      width,
		height:     height,
		bodyTop:    headerHeight + searchHeight,
		genreWidth: genreWidth,
		gridLeft:   gridLeft,
		cols:       cols,
	}
}

// genreAt returns the genre row under (x, y), or -1.
func (l screenLayout) genreAt(x, y, count int) int {
	if x < 0 || x >= l.genreWidth {
		return -1
	}
	row := y - l.bodyTop - 2
	if row < 0 || row >= count {
		return -1
	}
	return row
}

// cardAt returns the card index under (x, y), or -1 for gaps and empty cells.
func (l screenLayout) cardAt(x, y, count int) int {
	dx := x - l.gridLeft
	dy := y - l.bodyTop
	if dx < 0 || dy < 0 {
		return -1
	}
	stride := cardWidth + cardGap
	col := dx / stride
	if col >= l.cols || dx%stride >= cardWidth {
		return -1
	}
	index := (dy/cardHeight)*l.cols + col
	if index >= count {
		return -1
	}
	return index
}

func (m appModel) View() string {
	l := m.layout()
	if m.state == stateDetail {
		panel, left, top := m.overlayPanel(l)
		return lipgloss.NewStyle().MarginLeft(left).MarginTop(top).Render(panel)
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.genrePanel(l),
		strings.Repeat(" ", cardGap),
		m.gridView(l),
	)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(l),
		m.searchView(l),
		body,
		m.statusView(l),
	)
}

func (m appModel) headerView(l screenLayout) string {
	title := m.styles.title.Render("Movie Catalog")
	sub := []string{
		fmt.Sprintf("%s %s", m.styles.modeIcon, m.mode.String()),
		fmt.Sprintf("%d of %d movies", len(m.filtered), len(m.movies)),
	}
	if sel := m.selection(); !sel.IsEmpty() {
		if genres := sel.Genres(); len(genres) > 0 {
			sub = append(sub, "Genres: "+strings.Join(genres, ", "))
		}
		if keyword := sel.Keyword(); keyword != "" {
			sub = append(sub, "Search: "+strconv.Quote(keyword))
		}
	}
	line := title + "  " + m.styles.meta.Render(strings.Join(sub, " • "))

	hints := "ctrl+c quit • tab focus • ctrl+t theme"
	switch m.focus {
	case focusGenres:
		hints += " • ↑/↓ move • space toggle genre"
	case focusGrid:
		hints += " • arrows move • enter details"
	default:
		hints += " • type to search • esc clear"
	}
	clip := lipgloss.NewStyle().MaxWidth(l.width)
	return clip.Render(line) + "\n" + clip.Render(m.hint(hints))
}

func (m appModel) searchView(l screenLayout) string {
	style := m.styles.panel
	if m.focus == focusSearch {
		style = m.styles.panelFocused
	}
	return style.Width(l.width - 2).Render(m.search.View())
}

func (m appModel) genrePanel(l screenLayout) string {
	style := m.styles.panel
	if m.focus == focusGenres {
		style = m.styles.panelFocused
	}
	rows := []string{m.styles.panelTitle.Render("Genres")}
	for i, box := range view.GenreFilters(m.genres, m.checked) {
		mark := "[ ]"
		rowStyle := m.styles.checkbox
		if box.Checked {
			mark = "[x]"
			rowStyle = m.styles.checkboxOn
		}
		if m.focus == focusGenres && i == m.genreCursor {
			rowStyle = rowStyle.Inherit(m.styles.cursorRow)
		}
		rows = append(rows, rowStyle.Render(mark+" "+box.Label))
	}
	return style.Width(l.genreWidth - 2).Render(strings.Join(rows, "\n"))
}

func (m appModel) gridView(l screenLayout) string {
	if m.grid.Empty {
		return m.styles.notice.Render(m.grid.Notice)
	}
	var rows []string
	for start := 0; start < len(m.grid.Cards); start += l.cols {
		end := min(start+l.cols, len(m.grid.Cards))
		cells := make([]string, 0, (end-start)*2)
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			cells = append(cells, m.cardView(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m appModel) cardView(index int) string {
	card := m.grid.Cards[index]
	style := m.styles.card
	if m.focus == focusGrid && index == m.gridCursor {
		style = m.styles.cardSelected
	}
	width := cardInnerWidth - 2
	lines := []string{
		m.styles.cardTitle.Render(truncate(card.Title, width)),
		m.styles.cardMeta.Render(strconv.Itoa(card.Year)),
		m.styles.cardMeta.Render(truncate(card.Poster, width)),
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m appModel) statusView(l screenLayout) string {
	if m.status == "" {
		return ""
	}
	style := m.styles.status
	if strings.HasPrefix(m.status, "Could not") || strings.HasPrefix(m.status, "Clipboard unavailable") {
		style = m.styles.problem
	}
	return lipgloss.NewStyle().MaxWidth(l.width).Render(style.Render(m.status))
}

// overlayPanel renders the detail box and returns its top-left corner so
// clicks can be tested against it.
func (m appModel) overlayPanel(l screenLayout) (string, int, int) {
	width := min(overlayMaxWidth, l.width-4)
	if width < 20 {
		width = 20
	}
	d := m.detail
	label := m.styles.overlayLabel
	body := m.styles.overlayBody
	lines := []string{
		m.styles.overlayHeading.Render(d.Heading),
		"",
		label.Render("Poster: ") + body.Render(d.Poster),
		label.Render("Genres: ") + body.Render(d.Genres),
		label.Render("Director: ") + body.Render(d.Director),
		label.Render("Actors: ") + body.Render(d.Actors),
	}
	if d.Description != "" {
		lines = append(lines, "", body.Render(d.Description))
	}
	lines = append(lines, "", m.hint("esc close • y copy title"))

	panel := m.styles.overlay.Width(width).Render(strings.Join(lines, "\n"))
	left := max(0, (l.width-lipgloss.Width(panel))/2)
	top := max(0, (l.height-lipgloss.Height(panel))/2)
	return panel, left, top
}

func (m appModel) overlayContains(x, y int) bool {
	l := m.layout()
	panel, left, top := m.overlayPanel(l)
	return x >= left && x < left+lipgloss.Width(panel) &&
		y >= top && y < top+lipgloss.Height(panel)
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.state == stateDetail {
		if !m.overlayContains(msg.X, msg.Y) {
			m.closeDetail()
		}
		return m, nil
	}

	l := m.layout()
	if row := l.genreAt(msg.X, msg.Y, len(m.genres)); row >= 0 {
		m.focus = focusGenres
		m.search.Blur()
		m.toggleGenre(row)
		return m, nil
	}
	if m.grid.Empty {
		return m, nil
	}
	if index := l.cardAt(msg.X, msg.Y, len(m.grid.Cards)); index >= 0 {
		m.focus = focusGrid
		m.search.Blur()
		m.openDetail(index)
		return m, nil
	}
	if msg.Y >= headerHeight && msg.Y < headerHeight+searchHeight {
		return m.setFocus(focusSearch)
	}
	return m, nil
}

func (m appModel) hint(text string) string {
	return m.styles.hint.Render(text)
}

func truncate(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
