// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	MediaID       string `toml:"media_id"`
	Discover      bool   `toml:"discover"`
	Player        string `toml:"player"`
	Quality       string `toml:"quality"`
	DownloadDir   string `toml:"download_dir"`
	Timeout       int    `toml:"timeout"`        // HTTP timeout in seconds
	WatchInterval int    `toml:"watch_interval"` // seconds between watch polls
	Listen        string `toml:"listen"`         // watch status server address, empty disables
	Debug         bool   `toml:"debug"`
}

var (
	mediaIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)
	qualityPattern = regexp.MustCompile(`^(best|worst|live|[0-9]+p(_alt[0-9]*)?|[0-9]+k(_alt[0-9]*)?)$`)
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MediaID:       "kqrvUq1X",
		Discover:      false,
		Player:        "mpv",
		Quality:       "best",
		DownloadDir:   "~/Videos/pickleballtv",
		Timeout:       30,
		WatchInterval: 60,
		Listen:        "",
		Debug:         false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pickleballtv"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pickleballtv"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	if !mediaIDPattern.MatchString(c.MediaID) {
		return fmt.Errorf("invalid media_id %q (expected 8 alphanumeric characters)", c.MediaID)
	}

	if !qualityPattern.MatchString(c.Quality) {
		return fmt.Errorf("unsupported quality %q (e.g. best, worst, 720p, 2500k)", c.Quality)
	}

	if c.Timeout < 1 || c.Timeout > 300 {
		return fmt.Errorf("timeout must be between 1 and 300 seconds, got %d", c.Timeout)
	}

	if c.WatchInterval < 5 {
		return fmt.Errorf("watch_interval must be at least 5 seconds, got %d", c.WatchInterval)
	}

	if c.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Listen); err != nil {
			return fmt.Errorf("invalid listen address %q: %w", c.Listen, err)
		}
	}

	return nil
}

// HTTPTimeout returns Timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// PollInterval returns WatchInterval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.WatchInterval) * time.Second
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}
