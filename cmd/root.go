// Package cmd is the command-line surface. With no subcommand it runs the
// interactive browser; the subcommands expose the same catalog as text.
package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"movie-catalog-cli/catalog"
	"movie-catalog-cli/config"
	"movie-catalog-cli/logger"
	"movie-catalog-cli/store"
	"movie-catalog-cli/tui"
)

const appName = "movie-catalog-cli"

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
}

type rootFlags struct {
	configPath string
	logLevel   string
	logFile    string
}

// runtimeEnv is what every command needs after flags are parsed.
type runtimeEnv struct {
	cfg    config.Config
	log    *logger.Logger
	closer func()
}

// Execute runs the root command with os.Args.
func Execute(info BuildInfo) error {
	return newRootCmd(info).Execute()
}

func newRootCmd(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Browse a small movie catalog from the terminal",
		Long:          "Filter movies by genre and title, open their details and switch between light and dark mode.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadRuntime(flags)
			if err != nil {
				return err
			}
			defer env.closer()

			if !isTerminal(cmd.OutOrStdout()) {
				return renderListTable(cmd.OutOrStdout(), catalog.Movies())
			}
			return runBrowser(cmd, env)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a JSONC config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Append logs to this file")

	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newGenresCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newThemeCmd(flags))
	cmd.AddCommand(newVersionCmd(info))

	return cmd
}

func runBrowser(cmd *cobra.Command, env runtimeEnv) error {
	prefs, err := store.DefaultPreferences()
	if err != nil {
		return fmt.Errorf("resolve preferences path: %w", err)
	}

	// A configured zero means "no delay"; the model reads zero as "default".
	debounce := env.cfg.Debounce()
	if debounce == 0 {
		debounce = -1
	}

	model := tui.New(tui.Options{
		Movies:      catalog.Movies(),
		Preferences: prefs,
		Logger:      env.log,
		Debounce:    debounce,
	})

	env.log.WithFields(map[string]any{"preferences": prefs.Path()}).Info("starting browser")
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

func loadRuntime(flags *rootFlags) (runtimeEnv, error) {
	cfg, path, err := config.Load(flags.configPath, config.Overrides{
		LogLevel: flags.logLevel,
		LogFile:  flags.logFile,
	})
	if err != nil {
		return runtimeEnv{}, err
	}

	env := runtimeEnv{cfg: cfg, closer: func() {}}

	var writer io.Writer
	if cfg.LogFile != "" {
		file, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return runtimeEnv{}, fmt.Errorf("open log file: %w", err)
		}
		writer = file
		env.closer = func() { _ = file.Close() }
	}

	log, err := logger.New(logger.Options{
		Level:         cfg.LogLevel,
		HumanReadable: true,
		Writer:        writer,
	})
	if err != nil {
		env.closer()
		return runtimeEnv{}, fmt.Errorf("configure logger: %w", err)
	}
	env.log = log
	if path != "" {
		env.log.WithFields(map[string]any{"path": path}).Debug("config loaded")
	}
	return env, nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
