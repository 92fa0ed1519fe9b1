package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"movie-catalog-cli/catalog"
	"movie-catalog-cli/view"
)

type showOptions struct {
	jsonOutput bool
}

func newShowCmd() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <movie-id>",
		Short: "Show the details of one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output movie details as JSON")

	return cmd
}

func runShow(cmd *cobra.Command, rawID string, opts *showOptions) error {
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return fmt.Errorf("invalid movie id %q: %w", rawID, err)
	}
	movie, ok := catalog.ByID(catalog.Movies(), id)
	if !ok {
		return fmt.Errorf("movie %d not found; run '%s list' to see ids", id, appName)
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(movie)
	}

	detail := view.Detail(movie)
	fmt.Fprintln(out, detail.Heading)
	writer := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
	fmt.Fprintf(writer, "Poster:\t%s\n", detail.Poster)
	fmt.Fprintf(writer, "Genres:\t%s\n", detail.Genres)
	fmt.Fprintf(writer, "Director:\t%s\n", detail.Director)
	fmt.Fprintf(writer, "Actors:\t%s\n", detail.Actors)
	if err := writer.Flush(); err != nil {
		return err
	}
	if detail.Description != "" {
		fmt.Fprintf(out, "\n%s\n", detail.Description)
	}
	return nil
}
