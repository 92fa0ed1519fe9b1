package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"movie-catalog-cli/catalog"
	"movie-catalog-cli/model"
	"movie-catalog-cli/view"
)

type listOptions struct {
	filter     filterFlags
	jsonOutput bool
}

func newListCmd(flags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies, optionally filtered by genre and title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(flags)
			if err != nil {
				return err
			}
			defer env.closer()

			sel := opts.filter.selection()
			movies := catalog.Filter(catalog.Movies(), sel)
			env.log.WithFields(map[string]any{
				"genres":  sel.Genres(),
				"keyword": sel.Keyword(),
				"matches": len(movies),
			}).Debug("list filtered")

			if opts.jsonOutput {
				return renderListJSON(cmd.OutOrStdout(), movies)
			}
			return renderListTable(cmd.OutOrStdout(), movies)
		},
	}

	opts.filter.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func renderListTable(out io.Writer, movies []model.Movie) error {
	grid := view.Grid(movies)
	if grid.Empty {
		_, err := fmt.Fprintln(out, grid.Notice)
		return err
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tYEAR\tGENRES\tPOSTER")
	for i, card := range grid.Cards {
		fmt.Fprintf(writer, "%d\t%s\t%d\t%s\t%s\n",
			card.MovieID,
			card.Title,
			card.Year,
			strings.Join(movies[i].Genres, ", "),
			card.Poster,
		)
	}
	return writer.Flush()
}

func renderListJSON(out io.Writer, movies []model.Movie) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(movies)
}
