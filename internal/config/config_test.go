package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/patrickprogramme/transcripter/pkg/model"
)

func TestLoadCreatesDefaultFromEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcripter.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.Language != "en" || !cfg.PreferManualSubs || cfg.OutputFormat != model.OutputStructured {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Errorf("version = %d", cfg.ConfigVersion)
	}
	if entries, _ := filepath.Glob(path + ".bak.*"); len(entries) != 0 {
		t.Errorf("embedded example should not need migration, got backups %v", entries)
	}
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	data := "language: fr\nprefer_manual_subs: false\noutput_format: both\nconfig_version: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != "fr" || cfg.PreferManualSubs || cfg.OutputFormat != model.OutputBoth {
		t.Errorf("overlay not applied: %+v", cfg)
	}
	// absent du fichier : défaut conservé
	if cfg.Server.Addr != ":8080" || cfg.Log.Level != "info" {
		t.Errorf("defaults lost: server=%q log=%q", cfg.Server.Addr, cfg.Log.Level)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	data := `language = "de"
output_format = "plainText"
config_version = 2

[auth]
method = "cookies"
cookie_file = "/tmp/cookies.txt"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != "de" || cfg.OutputFormat != model.OutputPlainText {
		t.Errorf("unexpected: %+v", cfg)
	}
	if cfg.Auth.Method != "cookies" || cfg.Auth.CookieFile != "/tmp/cookies.txt" {
		t.Errorf("auth = %+v", cfg.Auth)
	}
}

func TestLoadMissingTOMLUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != "en" {
		t.Errorf("language = %q", cfg.Language)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("toml file should not be created")
	}
}

func TestMigrationFromV1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.yaml")
	if err := os.WriteFile(path, []byte("transcript_format: txt\nconfig_version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputFormat != model.OutputPlainText {
		t.Errorf("output_format = %q, want plainText", cfg.OutputFormat)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Errorf("version = %d", cfg.ConfigVersion)
	}

	backups, _ := filepath.Glob(path + ".bak.*")
	if len(backups) != 1 {
		t.Fatalf("expected one backup, got %v", backups)
	}
	written, _ := os.ReadFile(path)
	if strings.Contains(string(written), "transcript_format") {
		t.Errorf("legacy key still present:\n%s", written)
	}
	if !strings.Contains(string(written), "config_version: 2") {
		t.Errorf("version not written:\n%s", written)
	}
}

func TestResolveYtDlpPath(t *testing.T) {
	exe := "yt-dlp"
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}
	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty path uses PATH lookup", "", exe},
		{"directory", "/opt/bin", filepath.Join("/opt/bin", exe)},
		{"full path", filepath.Join("/opt/bin", exe), filepath.Join("/opt/bin", exe)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.YtDlp.Path = tt.path
			c.ResolveYtDlpPath()
			if c.YtDlp.ResolvedPath != tt.want {
				t.Errorf("ResolvedPath = %q, want %q", c.YtDlp.ResolvedPath, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	if w, err := c.Validate(); err != nil || len(w) != 0 {
		t.Errorf("default config: warnings=%v err=%v", w, err)
	}

	c = Default()
	c.Auth.Method = "cookies"
	if _, err := c.Validate(); err == nil {
		t.Error("cookies without source should fail")
	}

	c = Default()
	c.Auth.Method = "oauth"
	if _, err := c.Validate(); err == nil {
		t.Error("unknown auth method should fail")
	}

	c = Default()
	c.OutputFormat = "xml"
	if _, err := c.Validate(); err == nil {
		t.Error("unknown output format should fail")
	}

	c = Default()
	c.Language = "en_US"
	if w, err := c.Validate(); err != nil || len(w) != 0 {
		t.Errorf("en_US: warnings=%v err=%v", w, err)
	}

	c = Default()
	c.Language = "not a language!!"
	if w, err := c.Validate(); err != nil || len(w) != 1 {
		t.Errorf("invalid language should only warn: warnings=%v err=%v", w, err)
	}
}
