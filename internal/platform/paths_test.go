package platform

import (
	"path/filepath"
	"testing"
)

func TestPathsFor(t *testing.T) {
	cases := []struct {
		name       string
		goos       string
		env        map[string]string
		configDir  string
		dataDir    string
		wantConfig string
		wantData   string
	}{
		{
			name:       "linux xdg",
			goos:       "linux",
			env:        map[string]string{"XDG_CONFIG_HOME": "/xdg/config", "XDG_DATA_HOME": "/xdg/data"},
			configDir:  "/fallback/config",
			dataDir:    "/fallback/data",
			wantConfig: filepath.Join("/xdg/config", "cards", "config.toml"),
			wantData:   filepath.Join("/xdg/data", "cards"),
		},
		{
			name:       "linux without xdg",
			goos:       "linux",
			env:        map[string]string{},
			configDir:  "/home/me/.config",
			dataDir:    "/home/me/.local/share",
			wantConfig: filepath.Join("/home/me/.config", "cards", "config.toml"),
			wantData:   filepath.Join("/home/me/.local/share", "cards"),
		},
		{
			name:       "windows appdata",
			goos:       "windows",
			env:        map[string]string{"APPDATA": `C:\Roaming`, "LOCALAPPDATA": `C:\Local`},
			configDir:  `C:\fallback\config`,
			dataDir:    `C:\fallback\data`,
			wantConfig: filepath.Join(`C:\Roaming`, "cards", "config.toml"),
			wantData:   filepath.Join(`C:\Local`, "cards"),
		},
		{
			name:       "darwin ignores xdg",
			goos:       "darwin",
			env:        map[string]string{"XDG_CONFIG_HOME": "/ignored"},
			configDir:  "/Users/me/Library/Application Support",
			dataDir:    "/Users/me/Library/Application Support",
			wantConfig: filepath.Join("/Users/me/Library/Application Support", "cards", "config.toml"),
			wantData:   filepath.Join("/Users/me/Library/Application Support", "cards"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := PathsFor(tc.goos, tc.env, tc.configDir, tc.dataDir, "cards")
			if err != nil {
				t.Fatalf("PathsFor() error = %v", err)
			}
			if p.ConfigPath != tc.wantConfig {
				t.Fatalf("config path = %q, want %q", p.ConfigPath, tc.wantConfig)
			}
			if p.DataDir != tc.wantData {
				t.Fatalf("data dir = %q, want %q", p.DataDir, tc.wantData)
			}
			if p.LogDir != filepath.Join(tc.wantData, "log") {
				t.Fatalf("unexpected log dir %q", p.LogDir)
			}
		})
	}
}

func TestPathsForRejectsEmptyInputs(t *testing.T) {
	if _, err := PathsFor("darwin", nil, "", "/tmp/data", "cards"); err == nil {
		t.Fatal("expected error for empty dirs")
	}
	if _, err := PathsFor("linux", nil, "/cfg", "/data", "  "); err == nil {
		t.Fatal("expected error for empty app name")
	}
}

func TestDefaultPathsWithOptionsDevMode(t *testing.T) {
	p, err := DefaultPathsWithOptions(Options{DevMode: true})
	if err != nil {
		t.Fatalf("DefaultPathsWithOptions() error = %v", err)
	}
	if filepath.Base(filepath.Dir(p.ConfigPath)) != DefaultAppName+"-dev" {
		t.Fatalf("expected dev config dir suffix, got %q", p.ConfigPath)
	}
	if filepath.Base(p.DataDir) != DefaultAppName+"-dev" {
		t.Fatalf("expected dev data dir suffix, got %q", p.DataDir)
	}
}
