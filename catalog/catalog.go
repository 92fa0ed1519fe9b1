// Package catalog holds the compiled-in movie records and the pure
// functions that query them.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"movie-catalog-cli/model"
)

//go:embed movies.yaml
var embeddedMovies []byte

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// movies is initialised once and never mutated afterwards.
var movies = mustDecode(embeddedMovies)

// Movies returns the full catalog in its declared order. The slice is a
// copy; the genre slices inside are shared and must be treated as read-only.
func Movies() []model.Movie {
	out := make([]model.Movie, len(movies))
	copy(out, movies)
	return out
}

// ByID finds a movie by its identifier.
func ByID(list []model.Movie, id int) (model.Movie, bool) {
	for _, movie := range list {
		if movie.ID == id {
			return movie, true
		}
	}
	return model.Movie{}, false
}

func mustDecode(data []byte) []model.Movie {
	list, err := decode(data)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded movies: %v", err))
	}
	return list
}

func decode(data []byte) ([]model.Movie, error) {
	var list []model.Movie
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	for i := range list {
		list[i].Poster = strings.TrimSpace(list[i].Poster)
	}
	if err := Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Validate checks every record's fields and that identifiers are unique.
func Validate(list []model.Movie) error {
	if len(list) == 0 {
		return errors.New("catalog is empty")
	}
	seen := make(map[int]string, len(list))
	for i, movie := range list {
		if err := validatorInstance().Struct(movie); err != nil {
			return fmt.Errorf("movie #%d (%q): %w", i, movie.Title, err)
		}
		if other, dup := seen[movie.ID]; dup {
			return fmt.Errorf("movie id %d used by both %q and %q", movie.ID, other, movie.Title)
		}
		seen[movie.ID] = movie.Title
	}
	return nil
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validateInst = v
	})
	return validateInst
}
