package catalog

import (
	"sort"

	"movie-catalog-cli/model"
)

// AllGenres returns every distinct genre label in the catalog, sorted in
// natural (case-sensitive) string order.
func AllGenres(list []model.Movie) []string {
	set := map[string]struct{}{}
	for _, movie := range list {
		for _, genre := range movie.Genres {
			set[genre] = struct{}{}
		}
	}
	genres := make([]string, 0, len(set))
	for genre := range set {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres
}
