package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/paths"
)

// EnvPrefix is the environment variable prefix for config keys.
const EnvPrefix = "BLUE_GARDENER"

// Config holds user preferences that apply across projects.
type Config struct {
	// Version is the config format version. Only 1 is supported.
	Version int `mapstructure:"version" yaml:"version"`

	// Platform is the default target used when no --platform flag is given
	// and no manifest exists yet. Empty means detect.
	Platform string `mapstructure:"platform" yaml:"platform,omitempty"`

	// CatalogDir replaces the bundled agent catalog with a directory on disk.
	CatalogDir string `mapstructure:"catalog_dir" yaml:"catalog_dir,omitempty"`

	// Interactive enables prompts when a required choice is missing.
	Interactive bool `mapstructure:"interactive" yaml:"interactive"`
}

// Init resets viper and registers search paths, env binding, and defaults.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("platform", "")
	viper.SetDefault("catalog_dir", "")
	viper.SetDefault("interactive", true)
}

// Load reads the config file and returns the validated result.
// An empty path searches the default locations.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// No file in the search paths; defaults apply
		case path != "" && !paths.Exists(path):
			return nil, errors.Configurationf("config file not found at %s", path)
		default:
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrConfiguration)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrConfiguration)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.Configurationf("invalid config: %s", strings.Join(msgs, "; "))
	}

	return &cfg, nil
}

// FileUsed returns the path of the config file that was read, if any.
func FileUsed() string {
	return viper.ConfigFileUsed()
}
