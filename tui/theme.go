package tui

import (
	"github.com/charmbracelet/lipgloss"

	"movie-catalog-cli/model"
)

// palette holds the semantic colour slots for one display mode.
type palette struct {
	Surface   lipgloss.Color
	OnSurface lipgloss.Color
	Raised    lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Accent    lipgloss.Color
	OnAccent  lipgloss.Color
	Danger    lipgloss.Color
}

func lightPalette() palette {
	return palette{
		Surface:   lipgloss.Color("#f9fafb"),
		OnSurface: lipgloss.Color("#111827"),
		Raised:    lipgloss.Color("#e2e8f0"),
		Muted:     lipgloss.Color("#64748b"),
		Border:    lipgloss.Color("#cbd5e1"),
		Accent:    lipgloss.Color("#2563eb"),
		OnAccent:  lipgloss.Color("#f8fafc"),
		Danger:    lipgloss.Color("#dc2626"),
	}
}

func darkPalette() palette {
	return palette{
		Surface:   lipgloss.Color("#0b1120"),
		OnSurface: lipgloss.Color("#e5e7eb"),
		Raised:    lipgloss.Color("#1f2937"),
		Muted:     lipgloss.Color("#94a3b8"),
		Border:    lipgloss.Color("#334155"),
		Accent:    lipgloss.Color("#60a5fa"),
		OnAccent:  lipgloss.Color("#0b1120"),
		Danger:    lipgloss.Color("#f87171"),
	}
}

func paletteFor(mode model.ThemeMode) palette {
	if mode.IsDark() {
		return darkPalette()
	}
	return lightPalette()
}

type styles struct {
	palette palette

	app     lipgloss.Style
	title   lipgloss.Style
	meta    lipgloss.Style
	hint    lipgloss.Style
	status  lipgloss.Style
	problem lipgloss.Style

	panel        lipgloss.Style
	panelFocused lipgloss.Style
	panelTitle   lipgloss.Style
	checkbox     lipgloss.Style
	checkboxOn   lipgloss.Style
	cursorRow    lipgloss.Style

	card         lipgloss.Style
	cardSelected lipgloss.Style
	cardTitle    lipgloss.Style
	cardMeta     lipgloss.Style
	notice       lipgloss.Style

	overlay        lipgloss.Style
	overlayHeading lipgloss.Style
	overlayLabel   lipgloss.Style
	overlayBody    lipgloss.Style
	modeIcon       string
}

func newStyles(mode model.ThemeMode) styles {
	p := paletteFor(mode)
	base := lipgloss.NewStyle().Foreground(p.OnSurface)

	panel := base.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	card := base.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Width(cardInnerWidth).
		Height(cardLines)

	icon := "☀"
	if mode.IsDark() {
		icon = "☾"
	}

	return styles{
		palette: p,

		app:     lipgloss.NewStyle().Background(p.Surface).Foreground(p.OnSurface),
		title:   base.Bold(true).Foreground(p.Accent),
		meta:    base.Faint(true),
		hint:    lipgloss.NewStyle().Foreground(p.Muted).Faint(true),
		status:  base.Italic(true),
		problem: base.Foreground(p.Danger).Bold(true),

		panel:        panel,
		panelFocused: panel.BorderForeground(p.Accent),
		panelTitle:   base.Bold(true),
		checkbox:     base,
		checkboxOn:   base.Foreground(p.Accent).Bold(true),
		cursorRow:    base.Background(p.Raised),

		card:         card,
		cardSelected: card.BorderForeground(p.Accent).Border(lipgloss.ThickBorder()),
		cardTitle:    base.Bold(true),
		cardMeta:     base.Foreground(p.Muted),
		notice:       base.Foreground(p.Muted).Italic(true).Padding(1, 2),

		overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Accent).
			Background(p.Raised).
			Foreground(p.OnSurface).
			Padding(1, 3),
		overlayHeading: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.Raised),
		overlayLabel:   lipgloss.NewStyle().Bold(true).Background(p.Raised),
		overlayBody:    lipgloss.NewStyle().Background(p.Raised),
		modeIcon:       icon,
	}
}
