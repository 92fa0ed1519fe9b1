package catalog

import (
	"iter"
	"slices"
	"sort"
	"strings"

	"movie-catalog-cli/model"
)

// Selection is the user's current filter choice. It is a value: build a
// new one whenever a checkbox or the search text changes.
type Selection struct {
	genres  map[string]struct{}
	keyword string
}

// NewSelection builds a Selection from the checked genres and raw search
// text. The keyword is trimmed and case-folded here, once.
func NewSelection(genres []string, keyword string) Selection {
	set := make(map[string]struct{}, len(genres))
	for _, genre := range genres {
		set[genre] = struct{}{}
	}
	return Selection{
		genres:  set,
		keyword: strings.ToLower(strings.TrimSpace(keyword)),
	}
}

// Genres returns the selected genre labels, sorted.
func (s Selection) Genres() []string {
	out := make([]string, 0, len(s.genres))
	for genre := range s.genres {
		out = append(out, genre)
	}
	sort.Strings(out)
	return out
}

// Keyword returns the normalised search keyword.
func (s Selection) Keyword() string {
	return s.keyword
}

// IsEmpty reports whether the selection matches the whole catalog.
func (s Selection) IsEmpty() bool {
	return len(s.genres) == 0 && s.keyword == ""
}

// Match reports whether movie passes both the genre and keyword predicates.
func (s Selection) Match(movie model.Movie) bool {
	return s.matchGenre(movie) && s.matchKeyword(movie)
}

func (s Selection) matchGenre(movie model.Movie) bool {
	if len(s.genres) == 0 {
		return true
	}
	for _, genre := range movie.Genres {
		if _, ok := s.genres[genre]; ok {
			return true
		}
	}
	return false
}

func (s Selection) matchKeyword(movie model.Movie) bool {
	if s.keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(movie.Title), s.keyword)
}

// Matches lazily yields the movies accepted by sel, in catalog order.
func Matches(list []model.Movie, sel Selection) iter.Seq[model.Movie] {
	return func(yield func(model.Movie) bool) {
		for _, movie := range list {
			if !sel.Match(movie) {
				continue
			}
			if !yield(movie) {
				return
			}
		}
	}
}

// Filter collects Matches into a slice. An empty result is a normal
// outcome, never an error.
func Filter(list []model.Movie, sel Selection) []model.Movie {
	out := slices.Collect(Matches(list, sel))
	if out == nil {
		return []model.Movie{}
	}
	return out
}
