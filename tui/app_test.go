package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"movie-catalog-cli/model"
	"movie-catalog-cli/store"
)

type tickRecorder struct {
	delays []time.Duration
	msgs   []tea.Msg
}

// tick records the scheduled message instead of sleeping; the test decides
// when (and whether) each one is delivered.
func (r *tickRecorder) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	r.delays = append(r.delays, d)
	r.msgs = append(r.msgs, fn(time.Time{}))
	return nil
}

func scenarioMovies() []model.Movie {
	return []model.Movie{
		{ID: 1, Title: "Titanic", Year: 1997, Genres: []string{"Romance", "Drama"}, Director: "James Cameron"},
		{ID: 2, Title: "Avengers", Year: 2012, Genres: []string{"Action", "Sci-Fi"}},
	}
}

func newTestModel(t *testing.T, opts Options) (appModel, *tickRecorder) {
	t.Helper()
	m := New(opts).(appModel)
	rec := &tickRecorder{}
	m.tick = rec.tick
	m.copyText = func(string) error { return nil }
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, rec
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(appModel)
	if !ok {
		t.Fatalf("expected appModel, got %T", next)
	}
	return out
}

func typeText(t *testing.T, m appModel, text string) appModel {
	t.Helper()
	for _, r := range text {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func gridTitles(m appModel) []string {
	out := make([]string, 0, len(m.grid.Cards))
	for _, card := range m.grid.Cards {
		out = append(out, card.Title)
	}
	return out
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func genreIndex(t *testing.T, m appModel, genre string) int {
	t.Helper()
	for i, g := range m.genres {
		if g == genre {
			return i
		}
	}
	t.Fatalf("genre %q not found in %v", genre, m.genres)
	return -1
}

func TestNew_StartsWithFullCatalog(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	if len(m.grid.Cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(m.grid.Cards))
	}
	if m.renders != 1 {
		t.Fatalf("expected one initial render, got %d", m.renders)
	}
	want := "Action,Animation,Comedy,Crime,Drama,Family,Romance,Sci-Fi"
	if got := strings.Join(m.genres, ","); got != want {
		t.Fatalf("expected genres %q, got %q", want, got)
	}
	if m.mode != model.ThemeLight {
		t.Fatalf("expected light mode without preferences, got %q", m.mode)
	}
	if m.focus != focusSearch {
		t.Fatalf("expected search focus, got %v", m.focus)
	}
}

func TestSearch_DebounceRendersOnlyLastInput(t *testing.T) {
	m, rec := newTestModel(t, Options{})

	m = typeText(t, m, "tit")
	if len(rec.msgs) != 3 {
		t.Fatalf("expected 3 scheduled ticks, got %d", len(rec.msgs))
	}
	for _, d := range rec.delays {
		if d != 400*time.Millisecond {
			t.Fatalf("expected 400ms debounce, got %s", d)
		}
	}
	if m.renders != 1 || len(m.grid.Cards) != 4 {
		t.Fatalf("expected no render before the window elapses, got renders=%d cards=%d", m.renders, len(m.grid.Cards))
	}

	// Superseded ticks arrive first and must be ignored.
	m = update(t, m, rec.msgs[0])
	m = update(t, m, rec.msgs[1])
	if m.renders != 1 {
		t.Fatalf("expected stale ticks to be dropped, got %d renders", m.renders)
	}

	m = update(t, m, rec.msgs[2])
	if m.renders != 2 {
		t.Fatalf("expected exactly one debounced render, got %d", m.renders-1)
	}
	if got := strings.Join(gridTitles(m), ","); got != "Titanic" {
		t.Fatalf("expected [Titanic], got %q", got)
	}
}

func TestSearch_ConfiguredDebounce(t *testing.T) {
	m, rec := newTestModel(t, Options{Debounce: 150 * time.Millisecond})
	_ = typeText(t, m, "a")
	if len(rec.delays) != 1 || rec.delays[0] != 150*time.Millisecond {
		t.Fatalf("expected one 150ms tick, got %v", rec.delays)
	}
}

func TestSearch_EscClearsAndReschedules(t *testing.T) {
	m, rec := newTestModel(t, Options{})
	m = typeText(t, m, "zzz")
	m = update(t, m, rec.msgs[len(rec.msgs)-1])
	if !m.grid.Empty {
		t.Fatal("expected no matches for zzz")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.search.Value() != "" {
		t.Fatalf("expected search cleared, got %q", m.search.Value())
	}
	m = update(t, m, rec.msgs[len(rec.msgs)-1])
	if len(m.grid.Cards) != 4 {
		t.Fatalf("expected full catalog after clearing, got %d cards", len(m.grid.Cards))
	}
}

func TestGenreToggle_AppliesImmediately(t *testing.T) {
	m, rec := newTestModel(t, Options{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusGenres {
		t.Fatalf("expected genre focus, got %v", m.focus)
	}

	crime := genreIndex(t, m, "Crime")
	for i := 0; i < crime; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	if got := strings.Join(gridTitles(m), ","); got != "The Godfather" {
		t.Fatalf("expected [The Godfather], got %q", got)
	}
	if len(rec.msgs) != 0 {
		t.Fatalf("expected genre toggles to skip the debounce, got %d ticks", len(rec.msgs))
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(m.grid.Cards) != 4 {
		t.Fatalf("expected untoggle to restore full catalog, got %d", len(m.grid.Cards))
	}
}

func TestGenreToggle_UsesPendingSearchText(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = typeText(t, m, "god")

	m = update(t, m, click(2, m.layout().bodyTop+2+genreIndex(t, m, "Drama")))
	if got := strings.Join(gridTitles(m), ","); got != "The Godfather" {
		t.Fatalf("expected [The Godfather], got %q", got)
	}
}

func TestScenario_GenreThenSearchThenClear(t *testing.T) {
	m, rec := newTestModel(t, Options{Movies: scenarioMovies()})
	l := m.layout()

	m = update(t, m, click(1, l.bodyTop+2+genreIndex(t, m, "Drama")))
	if got := strings.Join(gridTitles(m), ","); got != "Titanic" {
		t.Fatalf("expected [Titanic], got %q", got)
	}

	m = update(t, m, click(1, l.bodyTop+2+genreIndex(t, m, "Drama")))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusSearch {
		t.Fatalf("expected search focus, got %v", m.focus)
	}
	m = typeText(t, m, "aven")
	m = update(t, m, rec.msgs[len(rec.msgs)-1])
	if got := strings.Join(gridTitles(m), ","); got != "Avengers" {
		t.Fatalf("expected [Avengers], got %q", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, rec.msgs[len(rec.msgs)-1])
	if got := strings.Join(gridTitles(m), ","); got != "Titanic,Avengers" {
		t.Fatalf("expected both movies, got %q", got)
	}
}

func TestScenario_NoMatchesNotice(t *testing.T) {
	m, rec := newTestModel(t, Options{Movies: scenarioMovies()})
	m = typeText(t, m, "zzz")
	m = update(t, m, rec.msgs[len(rec.msgs)-1])

	if !m.grid.Empty || len(m.grid.Cards) != 0 {
		t.Fatalf("expected empty grid, got %+v", m.grid)
	}
	if !strings.Contains(m.View(), "No matching movies found.") {
		t.Fatal("expected notice in view")
	}

	l := m.layout()
	m = update(t, m, click(l.gridLeft+1, l.bodyTop+1))
	if m.state != stateBrowse {
		t.Fatal("expected no clickable cards")
	}
}

func TestGrid_KeyboardOpensDetail(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusGrid {
		t.Fatalf("expected grid focus, got %v", m.focus)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != stateDetail {
		t.Fatal("expected detail overlay")
	}
	if m.detail.Heading != "Avengers (2012)" {
		t.Fatalf("expected Avengers heading, got %q", m.detail.Heading)
	}
}

func TestGrid_ClickOpensDetailAndGapDoesNot(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	l := m.layout()

	gap := l.gridLeft + cardWidth
	m = update(t, m, click(gap, l.bodyTop+1))
	if m.state != stateBrowse {
		t.Fatal("expected click in gap to be ignored")
	}

	// Fourth card wraps to the second row at the default width.
	m = update(t, m, click(l.gridLeft+2, l.bodyTop+cardHeight+1))
	if m.state != stateDetail {
		t.Fatal("expected detail overlay")
	}
	if m.detail.MovieID != 4 {
		t.Fatalf("expected Toy Story, got id %d", m.detail.MovieID)
	}
}

func TestOverlay_ClickInsideKeepsOpenOutsideCloses(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	l := m.layout()
	m = update(t, m, click(l.gridLeft+1, l.bodyTop+1))
	if m.state != stateDetail {
		t.Fatal("expected detail overlay")
	}

	panel, left, top := m.overlayPanel(m.layout())
	m = update(t, m, click(left+2, top+2))
	if m.state != stateDetail {
		t.Fatal("expected click inside overlay to keep it open")
	}

	m = update(t, m, click(left+lipgloss.Width(panel), top))
	if m.state != stateBrowse {
		t.Fatal("expected click outside overlay to close it")
	}
}

func TestOverlay_SuspendsBackgroundInput(t *testing.T) {
	m, rec := newTestModel(t, Options{})
	m = update(t, m, click(m.layout().gridLeft+1, m.layout().bodyTop+1))

	m = typeText(t, m, "ab")
	if m.search.Value() != "" || len(rec.msgs) != 0 {
		t.Fatalf("expected search untouched while overlay is open, got %q", m.search.Value())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateBrowse {
		t.Fatal("expected esc to close overlay")
	}
}

func TestOverlay_PlaceholdersInView(t *testing.T) {
	m, _ := newTestModel(t, Options{Movies: scenarioMovies()})
	m = update(t, m, click(m.layout().gridLeft+1, m.layout().bodyTop+1))
	out := m.View()
	for _, want := range []string{"Titanic (1997)", "Director: James Cameron", "Genres: Romance, Drama"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in overlay, got:\n%s", want, out)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, click(m.layout().gridLeft+cardWidth+cardGap+1, m.layout().bodyTop+1))
	out = m.View()
	for _, want := range []string{"Avengers (2012)", "Director: N/A", "Actors: N/A"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in overlay, got:\n%s", want, out)
		}
	}
}

func TestOverlay_CopyTitle(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	var copied string
	m.copyText = func(text string) error {
		copied = text
		return nil
	}
	m = update(t, m, click(m.layout().gridLeft+1, m.layout().bodyTop+1))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m = update(t, m, cmd())
	if copied != "Titanic (1997)" {
		t.Fatalf("expected title copied, got %q", copied)
	}
	if !strings.Contains(m.status, "Titanic (1997)") {
		t.Fatalf("expected status to mention copy, got %q", m.status)
	}
}

func TestTheme_RestoredFromPreferences(t *testing.T) {
	prefs := store.NewPreferences(filepath.Join(t.TempDir(), "preferences.json"))
	if err := prefs.WriteMode(model.ThemeDark); err != nil {
		t.Fatal(err)
	}

	m, _ := newTestModel(t, Options{Preferences: prefs})
	if m.mode != model.ThemeDark {
		t.Fatalf("expected dark mode restored, got %q", m.mode)
	}
	if m.styles.modeIcon != "☾" {
		t.Fatalf("expected dark styles, got icon %q", m.styles.modeIcon)
	}
}

func TestTheme_TogglePersists(t *testing.T) {
	prefs := store.NewPreferences(filepath.Join(t.TempDir(), "preferences.json"))
	m, _ := newTestModel(t, Options{Preferences: prefs})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = next.(appModel)
	if m.mode != model.ThemeDark {
		t.Fatalf("expected dark after toggle, got %q", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected save command")
	}
	m = update(t, m, cmd())

	mode, ok, err := prefs.ReadMode()
	if err != nil || !ok || mode != model.ThemeDark {
		t.Fatalf("expected dark persisted, got %q ok=%v err=%v", mode, ok, err)
	}

	restarted, _ := newTestModel(t, Options{Preferences: prefs})
	if restarted.mode != model.ThemeDark {
		t.Fatalf("expected dark after restart, got %q", restarted.mode)
	}
}

type failingStore struct{}

func (failingStore) ReadMode() (model.ThemeMode, bool, error) {
	return model.ThemeLight, false, errors.New("read failed")
}

func (failingStore) WriteMode(model.ThemeMode) error {
	return errors.New("disk full")
}

func TestTheme_SaveFailureStillFlips(t *testing.T) {
	m, _ := newTestModel(t, Options{Preferences: failingStore{}})
	if m.mode != model.ThemeLight {
		t.Fatalf("expected light on read failure, got %q", m.mode)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = next.(appModel)
	m = update(t, m, cmd())
	if m.mode != model.ThemeDark {
		t.Fatalf("expected in-memory mode to flip, got %q", m.mode)
	}
	if !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected failure in status, got %q", m.status)
	}
}

func TestLayout_CardAt(t *testing.T) {
	l := screenLayout{bodyTop: 5, gridLeft: 19, cols: 3}
	cases := []struct {
		x, y int
		want int
	}{
		{19, 5, 0},
		{42, 9, 0},
		{43, 5, -1},
		{44, 5, 1},
		{69, 6, 2},
		{19, 10, 3},
		{44, 10, -1},
		{18, 5, -1},
		{19, 4, -1},
	}
	for _, tc := range cases {
		if got := l.cardAt(tc.x, tc.y, 4); got != tc.want {
			t.Fatalf("cardAt(%d,%d): expected %d, got %d", tc.x, tc.y, tc.want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Toy Story", 20); got != "Toy Story" {
		t.Fatalf("expected unchanged, got %q", got)
	}
	got := truncate("An extremely long movie title", 10)
	if lipgloss.Width(got) > 10 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncated with ellipsis, got %q", got)
	}
}
