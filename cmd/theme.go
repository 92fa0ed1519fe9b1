package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"movie-catalog-cli/model"
	"movie-catalog-cli/store"
)

func newThemeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Print or set the persisted display mode",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(model.ThemeLight), string(model.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(flags)
			if err != nil {
				return err
			}
			defer env.closer()

			prefs, err := store.DefaultPreferences()
			if err != nil {
				return fmt.Errorf("resolve preferences path: %w", err)
			}

			if len(args) == 0 {
				mode, _, err := prefs.ReadMode()
				if err != nil {
					return fmt.Errorf("read theme: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), mode)
				return nil
			}

			mode := model.ParseThemeMode(args[0])
			if err := prefs.WriteMode(mode); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			env.log.WithFields(map[string]any{"theme": mode.String()}).Info("theme saved")
			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", mode)
			return nil
		},
	}
}
