package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"movie-catalog-cli/catalog"
)

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "Print every genre in the catalog, sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, genre := range catalog.AllGenres(catalog.Movies()) {
				fmt.Fprintln(cmd.OutOrStdout(), genre)
			}
			return nil
		},
	}
}
