package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/teambrain/brainconf/internal/branding"
	"github.com/teambrain/brainconf/internal/config"
	"github.com/teambrain/brainconf/internal/logging"
	"github.com/teambrain/brainconf/internal/store"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads and writes the shared Team Brain configuration: filesystem paths,
agent profiles and tool settings kept in one JSON document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String(config.KeyConfig, "",
		"Configuration file, also $"+branding.EnvVar(config.KeyConfig)+" (default "+config.FilePath()+")")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "",
		"Log level: DEBUG, INFO, WARN or ERROR, also $"+branding.EnvVar(config.KeyLogLevel)+" (default: settings.log_level)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// openStore resolves runtime options for cmd, sets up logging and opens the
// configuration store. Logging starts at WARN; once the document is loaded its
// settings.log_level applies unless a flag or environment variable set one.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	opts, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("resolving options: %w", err)
	}

	level := logging.LevelWarn
	if opts.LogLevel != "" {
		if level, err = logging.ParseLevel(opts.LogLevel); err != nil {
			return nil, err
		}
	}
	logger := logging.InitForCLI(level, cmd.ErrOrStderr())

	s, err := store.Open(store.WithPath(opts.ConfigFile), store.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	if opts.LogLevel == "" {
		applyDocumentLogLevel(s, logger)
	}
	return s, nil
}

func applyDocumentLogLevel(s *store.Store, logger *slog.Logger) {
	name := s.SettingString("log_level", "")
	if name == "" {
		return
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		logger.Warn("ignoring settings.log_level", "error", err)
		return
	}
	logging.SetLevel(level)
}
