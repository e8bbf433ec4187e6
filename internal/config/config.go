package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/teambrain/brainconf/internal/branding"
)

// Keys resolved by Load. Each maps to a flag of the same name and to an
// environment variable with the branding prefix (e.g. BRAINCONF_LOG_LEVEL).
const (
	KeyConfig   = "config"
	KeyLogLevel = "log-level"
)

// Options holds the CLI's own runtime settings.
type Options struct {
	// ConfigFile is the location of the shared configuration document.
	ConfigFile string
	// LogLevel is empty unless set by flag or environment.
	LogLevel string
}

// Dir returns the path to the configuration home directory (~/.teambrain/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the default location of the configuration document
// (~/.teambrain/team_brain_config.json).
func FilePath() string {
	return filepath.Join(Dir(), branding.ConfigFile())
}

// Load resolves Options with precedence flag > environment > default. flags
// may be nil, in which case only the environment and defaults apply.
func Load(flags *pflag.FlagSet) (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyConfig, FilePath())
	v.SetDefault(KeyLogLevel, "")

	if flags != nil {
		for _, key := range []string{KeyConfig, KeyLogLevel} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	opts := &Options{
		ConfigFile: v.GetString(KeyConfig),
		LogLevel:   v.GetString(KeyLogLevel),
	}
	if opts.ConfigFile == "" {
		opts.ConfigFile = FilePath()
	}
	return opts, nil
}
