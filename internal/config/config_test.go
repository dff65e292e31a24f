package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Player != "mpv" {
		t.Errorf("default player = %q, want mpv", cfg.Player)
	}
	if cfg.Quality != "best" {
		t.Errorf("default quality = %q, want best", cfg.Quality)
	}
	if cfg.MediaID != "kqrvUq1X" {
		t.Errorf("default media_id = %q, want kqrvUq1X", cfg.MediaID)
	}
	if cfg.Discover {
		t.Error("default discover should be false")
	}
	if cfg.HTTPTimeout() != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", cfg.HTTPTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid player", func(c *Config) { c.Player = "notepad" }, true},
		{"valid vlc", func(c *Config) { c.Player = "vlc" }, false},
		{"valid 720p", func(c *Config) { c.Quality = "720p" }, false},
		{"valid bandwidth name", func(c *Config) { c.Quality = "2500k" }, false},
		{"valid alt", func(c *Config) { c.Quality = "720p_alt" }, false},
		{"invalid quality", func(c *Config) { c.Quality = "4k!" }, true},
		{"short media id", func(c *Config) { c.MediaID = "abc" }, true},
		{"media id traversal", func(c *Config) { c.MediaID = "../../xy" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"huge timeout", func(c *Config) { c.Timeout = 3600 }, true},
		{"tiny interval", func(c *Config) { c.WatchInterval = 1 }, true},
		{"valid listen", func(c *Config) { c.Listen = "127.0.0.1:9108" }, false},
		{"invalid listen", func(c *Config) { c.Listen = "9108" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	content := `
media_id = "Ab12Cd34"
discover = true
player = "vlc"
quality = "720p"
timeout = 10
watch_interval = 30
listen = ":9108"
`
	appDir := filepath.Join(tmpDir, "pickleballtv")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MediaID != "Ab12Cd34" {
		t.Errorf("media_id = %q, want Ab12Cd34", cfg.MediaID)
	}
	if !cfg.Discover {
		t.Error("discover should be true")
	}
	if cfg.Player != "vlc" {
		t.Errorf("player = %q, want vlc", cfg.Player)
	}
	if cfg.Quality != "720p" {
		t.Errorf("quality = %q, want 720p", cfg.Quality)
	}
	if cfg.HTTPTimeout() != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.HTTPTimeout())
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Errorf("interval = %v, want 30s", cfg.PollInterval())
	}
	if cfg.Listen != ":9108" {
		t.Errorf("listen = %q, want :9108", cfg.Listen)
	}
	if cfg.DownloadDir != "~/Videos/pickleballtv" {
		t.Errorf("unset keys should keep defaults, download_dir = %q", cfg.DownloadDir)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	appDir := filepath.Join(tmpDir, "pickleballtv")
	os.MkdirAll(appDir, 0755)
	os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(`player = "notepad"`), 0644)

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an invalid player")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Player != "mpv" {
		t.Errorf("missing file should return defaults, got player = %q", cfg.Player)
	}
}

func TestExpandDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.DownloadDir = "/tmp/test-recordings"

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		t.Fatalf("ExpandDownloadDir() error: %v", err)
	}
	if dir != "/tmp/test-recordings" {
		t.Errorf("got %q, want /tmp/test-recordings", dir)
	}
}
