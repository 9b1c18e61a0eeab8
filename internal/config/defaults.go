// Package config provides configuration loading and defaults for codewatch.
package config

import "github.com/blackwell-systems/codewatch/internal/exclude"

// DefaultConfigDir is the default location for codewatch configuration.
const DefaultConfigDir = "~/.config/codewatch"

// DefaultDBName is the filename for the SQLite metrics cache.
const DefaultDBName = "codewatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultScan holds the default scan settings.
var DefaultScan = Scan{
	MaxLines:       140,
	TopN:           20,
	FileTypes:      []string{".py", ".ts", ".tsx", ".js", ".jsx"},
	TimeoutSeconds: 10,
	Workers:        0, // 0 means one per CPU
}

// DefaultExclusions holds the built-in directory and file exclusions.
var DefaultExclusions = Exclusions{
	Dirs:         exclude.DefaultDirs,
	FilePatterns: exclude.DefaultFileGlobs,
}

// DefaultCache holds the default cache settings.
var DefaultCache = Cache{
	Enabled: true,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
