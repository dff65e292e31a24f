package httputil

import (
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://cdn.jwplayer.com/v2/media/kqrvUq1X", false},
		{"HTTP rejected", "http://cdn.jwplayer.com/v2/media/kqrvUq1X", true},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"FTP rejected", "ftp://example.com/file", true},
		{"empty string", "", true},
		{"no host", "https://", true},
		{"valid with port", "https://127.0.0.1:8443/master.m3u8", false},
		{"valid with query", "https://example.com/live.m3u8?token=abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMediaURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://cdn.example.com/live.m3u8", false},
		{"valid HTTP", "http://cdn.example.com/live.m3u8", false},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"file scheme rejected", "file:///etc/passwd", true},
		{"empty string", "", true},
		{"no host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMediaURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMediaURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"jw media id", "kqrvUq1X", false},
		{"with dash and underscore", "abc-DEF_123", false},
		{"empty", "", true},
		{"path traversal", "../kqrvUq1X", true},
		{"slash", "v2/media", true},
		{"query injection", "kqrvUq1X?x=1", true},
		{"shell injection", "$(whoami)", true},
		{"newline", "abc\ndef", true},
		{"too long", string(make([]byte, 100)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"normal filename", "PickleballTV 2026-10-16 1830.ts", "PickleballTV 2026-10-16 1830.ts"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"directory components", "/home/user/secret.txt", "secret.txt"},
		{"null bytes", "live\x00.ts", "live.ts"},
		{"Windows special chars", "live<>:\"|?*.ts", "live_______.ts"},
		{"double dots", "live..ts", "live_ts"},
		{"empty string", "", "untitled"},
		{"just dot", ".", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeDownloadPath(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		filename string
		wantErr  bool
	}{
		{"normal", "/tmp/recordings", "live.ts", false},
		{"path traversal attempt", "/tmp/recordings", "../../etc/passwd", false}, // sanitized to "passwd"
		{"shell injection", "/tmp/recordings", "$(whoami).ts", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SafeDownloadPath(tt.dir, tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("SafeDownloadPath(%q, %q) error = %v, wantErr %v", tt.dir, tt.filename, err, tt.wantErr)
			}
			if err == nil && path == "" {
				t.Error("SafeDownloadPath returned empty path without error")
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	got := BuildURL("https://cdn.jwplayer.com/v2/media/", "kqrvUq1X")
	if got != "https://cdn.jwplayer.com/v2/media/kqrvUq1X" {
		t.Errorf("BuildURL = %q", got)
	}

	got = BuildURL("https://example.com", "a b")
	if got != "https://example.com/a%20b" {
		t.Errorf("BuildURL escaping = %q", got)
	}
}
