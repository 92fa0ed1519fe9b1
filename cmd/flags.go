package cmd

import (
	"github.com/spf13/pflag"

	"movie-catalog-cli/catalog"
)

type filterFlags struct {
	genres []string
	search string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&f.genres, "genre", "g", nil, "Only movies in any of these genres (repeatable)")
	fs.StringVarP(&f.search, "search", "s", "", "Only movies whose title contains this text")
}

func (f *filterFlags) selection() catalog.Selection {
	return catalog.NewSelection(f.genres, f.search)
}
