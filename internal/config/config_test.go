package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}
	if cfg.Display.DateLayout != "Jan 2, 2006" {
		t.Fatalf("unexpected date layout %q", cfg.Display.DateLayout)
	}
	if !cfg.Confirm.DeleteAll || cfg.Confirm.DeleteList {
		t.Fatalf("unexpected confirm defaults %#v", cfg.Confirm)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	d, err := cfg.NotificationDuration()
	if err != nil || d != 3*time.Second {
		t.Fatalf("NotificationDuration() = %v, %v", d, err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != defaults {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
	cfg, err = Load("", defaults)
	if err != nil || cfg != defaults {
		t.Fatalf("Load(\"\") = %#v, %v", cfg, err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"

[logging.dev_file]
enabled = false

[display]
language = "de"
date_layout = "02.01.2006"

[notifications]
duration = "0s"

[confirm]
delete_all = false
delete_list = true
`)
	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.DevFile.Enabled {
		t.Fatalf("unexpected logging %#v", cfg.Logging)
	}
	if cfg.Logging.DevFile.Dir != ".cards/log" {
		t.Fatalf("expected dev dir default kept, got %q", cfg.Logging.DevFile.Dir)
	}
	if cfg.Display.Language != "de" || cfg.Display.DateLayout != "02.01.2006" {
		t.Fatalf("unexpected display %#v", cfg.Display)
	}
	if cfg.Display.DetailTimeLayout != "03:04 PM" {
		t.Fatalf("expected detail time default kept, got %q", cfg.Display.DetailTimeLayout)
	}
	if d, _ := cfg.NotificationDuration(); d != 0 {
		t.Fatalf("expected disabled auto-dismiss, got %v", d)
	}
	if cfg.Confirm.DeleteAll || !cfg.Confirm.DeleteList {
		t.Fatalf("unexpected confirm %#v", cfg.Confirm)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{name: "level", content: "[logging]\nlevel = \"loud\"\n", want: "logging.level"},
		{name: "duration", content: "[notifications]\nduration = \"soon\"\n", want: "notifications.duration"},
		{name: "negative duration", content: "[notifications]\nduration = \"-1s\"\n", want: "notifications.duration"},
		{name: "language", content: "[display]\nlanguage = \"not a tag!\"\n", want: "display.language"},
		{name: "layout", content: "[display]\ndate_layout = \"  \"\n", want: "display.date_layout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content), Default())
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[logging\nlevel ="), Default())
	if err == nil || !strings.Contains(err.Error(), "decode toml") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestWriteDefaultCreatesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	created, err := WriteDefault(path)
	if err != nil || !created {
		t.Fatalf("WriteDefault() = %t, %v", created, err)
	}
	cfg, err := Load(path, Config{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Fatalf("round-tripped config differs: %#v", cfg)
	}
	created, err = WriteDefault(path)
	if err != nil || created {
		t.Fatalf("second WriteDefault() = %t, %v", created, err)
	}
}
