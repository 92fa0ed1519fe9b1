// Package view turns catalog data into toolkit-independent descriptions.
// Adapters (the terminal UI, the plain-text CLI) decide how to draw them.
package view

import (
	"fmt"
	"strings"

	"movie-catalog-cli/model"
)

const (
	NoMatchesNotice = "No matching movies found."
	Placeholder     = "N/A"
)

// Card is the summary unit shown in the grid.
type Card struct {
	MovieID int
	Poster  string
	Title   string
	Year    int
}

// GridView describes the catalog area. When Empty is set, Cards is empty
// and Notice must be shown instead.
type GridView struct {
	Cards  []Card
	Empty  bool
	Notice string
}

// DetailView describes the overlay for one movie. Optional fields already
// carry their placeholders.
type DetailView struct {
	MovieID     int
	Heading     string
	Poster      string
	Genres      string
	Director    string
	Actors      string
	Description string
}

// Checkbox is one genre filter control.
type Checkbox struct {
	Label   string
	Checked bool
}

func Grid(movies []model.Movie) GridView {
	if len(movies) == 0 {
		return GridView{Cards: []Card{}, Empty: true, Notice: NoMatchesNotice}
	}
	cards := make([]Card, 0, len(movies))
	for _, movie := range movies {
		cards = append(cards, Card{
			MovieID: movie.ID,
			Poster:  movie.Poster,
			Title:   movie.Title,
			Year:    movie.Year,
		})
	}
	return GridView{Cards: cards}
}

func Detail(movie model.Movie) DetailView {
	return DetailView{
		MovieID:     movie.ID,
		Heading:     fmt.Sprintf("%s (%d)", movie.Title, movie.Year),
		Poster:      movie.Poster,
		Genres:      strings.Join(movie.Genres, ", "),
		Director:    orPlaceholder(movie.Director, Placeholder),
		Actors:      orPlaceholder(movie.Actors, Placeholder),
		Description: orPlaceholder(movie.Description, ""),
	}
}

// GenreFilters pairs every genre with its checked state, keeping the
// order of genres.
func GenreFilters(genres []string, checked map[string]bool) []Checkbox {
	boxes := make([]Checkbox, 0, len(genres))
	for _, genre := range genres {
		boxes = append(boxes, Checkbox{Label: genre, Checked: checked[genre]})
	}
	return boxes
}

func orPlaceholder(value string, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
