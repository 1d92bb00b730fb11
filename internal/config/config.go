// Package config provides configuration types and defaults for inventar.
package config

// Config holds all configuration options for the service. Values come from
// flags, the INVENTAR_* environment, or an optional YAML config file.
type Config struct {
	// Host and Port form the listen address.
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// CacheDir holds the inventory document and the photo files.
	CacheDir string `mapstructure:"cache_dir"`

	// LogFile, when set, receives a copy of all log output.
	LogFile string `mapstructure:"log_file"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Host:     "127.0.0.1",
		Port:     8080,
		CacheDir: "cache",
	}
}
