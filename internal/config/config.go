package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level codewatch configuration.
type Config struct {
	Scan       Scan       `mapstructure:"scan"`
	Exclusions Exclusions `mapstructure:"exclusions"`
	Cache      Cache      `mapstructure:"cache"`
	Output     Output     `mapstructure:"output"`
}

// Scan defines the scan defaults applied when flags don't override them.
type Scan struct {
	MaxLines       int      `mapstructure:"max_lines"`
	TopN           int      `mapstructure:"top_n"`
	FileTypes      []string `mapstructure:"file_types"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	Workers        int      `mapstructure:"workers"`
}

// Exclusions defines which directories and files scans never look at.
// Configured values replace the built-ins rather than extending them.
type Exclusions struct {
	Dirs         []string `mapstructure:"dirs"`
	FilePatterns []string `mapstructure:"file_patterns"`
}

// Cache defines the metrics cache settings.
type Cache struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("scan.max_lines", DefaultScan.MaxLines)
	v.SetDefault("scan.top_n", DefaultScan.TopN)
	v.SetDefault("scan.file_types", DefaultScan.FileTypes)
	v.SetDefault("scan.timeout_seconds", DefaultScan.TimeoutSeconds)
	v.SetDefault("scan.workers", DefaultScan.Workers)
	v.SetDefault("exclusions.dirs", DefaultExclusions.Dirs)
	v.SetDefault("exclusions.file_patterns", DefaultExclusions.FilePatterns)
	v.SetDefault("cache.enabled", DefaultCache.Enabled)
	v.SetDefault("cache.path", "")
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DBPath()
	} else {
		cfg.Cache.Path = expandPath(cfg.Cache.Path)
	}

	return &cfg, nil
}

// DBPath returns the default path to the SQLite metrics cache.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
