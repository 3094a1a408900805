package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hylla/cards/internal/app"
	"github.com/hylla/cards/internal/config"
	"github.com/hylla/cards/internal/tui"
)

// fakeProgram records the model handed to the program factory.
type fakeProgram struct {
	model tea.Model
	err   error
}

func (p *fakeProgram) Run() (tea.Model, error) {
	return p.model, p.err
}

// isolateEnv points config and data lookups at a temp dir.
func isolateEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("CARDS_CONFIG", "")
	t.Setenv("CARDS_APP_NAME", "")
	t.Setenv("CARDS_DEV_MODE", "false")
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestPathsCommand(t *testing.T) {
	root := isolateEnv(t)
	out, _, err := execute(t, "paths", "--app", "cards-test")
	if err != nil {
		t.Fatalf("paths error = %v", err)
	}
	for _, want := range []string{
		"app: cards-test\n",
		"dev_mode: false\n",
		"config: " + filepath.Join(root, "config", "cards-test", "config.toml") + "\n",
		"data_dir: " + filepath.Join(root, "data", "cards-test") + "\n",
		"log_dir: " + filepath.Join(root, "data", "cards-test", "log") + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output\n%s", want, out)
		}
	}
}

func TestPathsCommandHonorsEnv(t *testing.T) {
	root := isolateEnv(t)
	custom := filepath.Join(root, "elsewhere.toml")
	t.Setenv("CARDS_CONFIG", custom)
	t.Setenv("CARDS_APP_NAME", "envapp")
	t.Setenv("CARDS_DEV_MODE", "true")

	out, _, err := execute(t, "paths")
	if err != nil {
		t.Fatalf("paths error = %v", err)
	}
	if !strings.Contains(out, "config: "+custom+"\n") {
		t.Fatalf("expected CARDS_CONFIG override\n%s", out)
	}
	if !strings.Contains(out, "app: envapp\n") || !strings.Contains(out, "dev_mode: true\n") {
		t.Fatalf("expected env app and dev mode\n%s", out)
	}
	if !strings.Contains(out, filepath.Join(root, "data", "envapp-dev")) {
		t.Fatalf("expected dev data dir\n%s", out)
	}
}

func TestInitCommandWritesOnce(t *testing.T) {
	root := isolateEnv(t)
	path := filepath.Join(root, "cfg", "config.toml")

	out, _, err := execute(t, "init", "--config", path)
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out, "wrote config: "+path) {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file, stat error = %v", err)
	}

	out, _, err = execute(t, "init", "--config", path)
	if err != nil {
		t.Fatalf("second init error = %v", err)
	}
	if !strings.Contains(out, "config exists: "+path) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDemoCommandPrintsEachFilter(t *testing.T) {
	isolateEnv(t)
	out, _, err := execute(t, "demo")
	if err != nil {
		t.Fatalf("demo error = %v", err)
	}
	want := strings.Join([]string{
		"== filter: all ==",
		"Groceries  [All] Active Completed",
		"  [ ] Buy milk (Jan 1, 2025)",
		"  [x] Buy eggs (Jan 2, 2025)",
		"== filter: active ==",
		"Groceries  All [Active] Completed",
		"  [ ] Buy milk (Jan 1, 2025)",
		"== filter: completed ==",
		"Groceries  All Active [Completed]",
		"  [x] Buy eggs (Jan 2, 2025)",
		"",
	}, "\n")
	if out != want {
		t.Fatalf("unexpected demo output\n got:\n%s\nwant:\n%s", out, want)
	}
}

func TestDemoRejectsInvalidConfig(t *testing.T) {
	root := isolateEnv(t)
	path := filepath.Join(root, "bad.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, _, err := execute(t, "demo", "--config", path); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("expected logging.level error, got %v", err)
	}
}

func TestRootLaunchesProgram(t *testing.T) {
	isolateEnv(t)
	orig := programFactory
	t.Cleanup(func() { programFactory = orig })

	var launched tea.Model
	programFactory = func(m tea.Model) program {
		launched = m
		return &fakeProgram{model: m}
	}
	if _, _, err := execute(t); err != nil {
		t.Fatalf("root error = %v", err)
	}
	if _, ok := launched.(tui.Model); !ok {
		t.Fatalf("expected tui.Model, got %T", launched)
	}
}

func TestRootWrapsProgramError(t *testing.T) {
	isolateEnv(t)
	orig := programFactory
	t.Cleanup(func() { programFactory = orig })

	boom := errors.New("boom")
	programFactory = func(m tea.Model) program {
		return &fakeProgram{model: m, err: boom}
	}
	_, _, err := execute(t)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped program error, got %v", err)
	}
}

func TestRuntimeLoggerDevFileSink(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	cfg := config.LoggingConfig{Level: "debug", DevFile: config.DevFileConfig{Enabled: true}}
	now := func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }

	logger, err := newRuntimeLogger(&console, "cards", true, cfg, dir, now)
	if err != nil {
		t.Fatalf("newRuntimeLogger() error = %v", err)
	}
	wantPath := filepath.Join(dir, "cards-20250304.log")
	if logger.DevLogPath() != wantPath {
		t.Fatalf("dev log path = %q, want %q", logger.DevLogPath(), wantPath)
	}

	logger.SetConsoleEnabled(false)
	notifier := logNotifier(logger)
	notifier.Notify(app.Notification{Severity: app.SeveritySuccess, Message: "All task lists deleted!"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if console.Len() != 0 {
		t.Fatalf("expected muted console, got %q", console.String())
	}
	content, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "All task lists deleted!") {
		t.Fatalf("expected notification in dev log, got %q", content)
	}
}

func TestRuntimeLoggerConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	cfg := config.LoggingConfig{Level: "info", DevFile: config.DevFileConfig{Enabled: true}}
	logger, err := newRuntimeLogger(&console, "cards", false, cfg, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("newRuntimeLogger() error = %v", err)
	}
	if logger.DevLogPath() != "" {
		t.Fatalf("expected no dev log outside dev mode, got %q", logger.DevLogPath())
	}
	logNotifier(logger).Notify(app.Notification{Severity: app.SeverityInfo, Message: "hidden at info"})
	logNotifier(logger).Notify(app.Notification{Severity: app.SeverityError, Message: "Task date cannot be empty."})
	out := console.String()
	if strings.Contains(out, "hidden at info") {
		t.Fatalf("expected info notification logged at debug, got %q", out)
	}
	if !strings.Contains(out, "Task date cannot be empty.") {
		t.Fatalf("expected error notification at warn, got %q", out)
	}

	if _, err := newRuntimeLogger(&console, "cards", false, config.LoggingConfig{Level: "loud"}, "", nil); err == nil {
		t.Fatal("expected invalid level error")
	}
}

func TestSanitizeLogFileStem(t *testing.T) {
	cases := map[string]string{
		"cards":     "cards",
		" my app ":  "my-app",
		"a/b:c":     "a-b-c",
		"   ":       "cards",
		"/leading/": "leading",
	}
	for in, want := range cases {
		if got := sanitizeLogFileStem(in); got != want {
			t.Fatalf("sanitizeLogFileStem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("CARDS_TEST_BOOL", "yes")
	if _, ok := parseBoolEnv("CARDS_TEST_BOOL"); ok {
		t.Fatal("expected malformed bool to be ignored")
	}
	t.Setenv("CARDS_TEST_BOOL", "1")
	if v, ok := parseBoolEnv("CARDS_TEST_BOOL"); !ok || !v {
		t.Fatalf("parseBoolEnv() = %t, %t", v, ok)
	}
	t.Setenv("CARDS_TEST_BOOL", "")
	if _, ok := parseBoolEnv("CARDS_TEST_BOOL"); ok {
		t.Fatal("expected unset bool to report not ok")
	}
}
