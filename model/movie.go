package model

// Movie is one immutable catalog record.
type Movie struct {
	ID          int      `json:"id" yaml:"id" validate:"gt=0"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Year        int      `json:"year" yaml:"year" validate:"gte=1888"`
	Genres      []string `json:"genres" yaml:"genres" validate:"min=1,dive,notblank"`
	Poster      string   `json:"poster" yaml:"poster"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Director    string   `json:"director,omitempty" yaml:"director"`
	Actors      string   `json:"actors,omitempty" yaml:"actors"`
}

// HasGenre reports whether genre is one of the movie's labels.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
