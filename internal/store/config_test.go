package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Fatalf("expected empty config (-want +got):\n%s", diff)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEMPO_CONFIG_DIR", dir)

	want := &Config{
		Format:         "DD/MM/YYYY HH:mm",
		Locale:         "en-GB",
		Kind:           "datetime",
		MinutesStep:    15,
		QueryTimeoutMs: 3000,
		TUI:            &TUIConfig{Profile: "neon"},
	}
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	want.Locale = "fr"
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	bak, err := os.ReadFile(filepath.Join(dir, "config.json.bak"))
	if err != nil {
		t.Fatalf("expected backup: %v", err)
	}
	if !strings.Contains(string(bak), "en-GB") {
		t.Fatalf("expected backup to hold the previous config, got %s", bak)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	if err := SaveConfig(&Config{Format: "L", Locale: "en"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	t.Setenv("TEMPO_LOCALE", "de")
	t.Setenv("TEMPO_TUI_PROFILE", "mono")
	t.Setenv("TEMPO_MINUTESSTEP", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := &Config{Format: "L", Locale: "de", MinutesStep: 5, TUI: &TUIConfig{Profile: "mono"}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigSet(t *testing.T) {
	var cfg Config
	for _, kv := range [][2]string{
		{"format", "YYYY-MM-DD"},
		{"direction", "rtl"},
		{"kind", "time"},
		{"minutesStep", "10"},
		{"tui.profile", "neon"},
	} {
		if err := cfg.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("Set(%s): %v", kv[0], err)
		}
	}
	want := Config{Format: "YYYY-MM-DD", Direction: "rtl", Kind: "time", MinutesStep: 10, TUI: &TUIConfig{Profile: "neon"}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	bad := [][2]string{
		{"minutesStep", "0"},
		{"direction", "up"},
		{"kind", "week"},
		{"colour", "red"},
	}
	for _, kv := range bad {
		if err := cfg.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("expected Set(%s, %s) to fail", kv[0], kv[1])
		}
	}
}

func TestDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEMPO_CONFIG_DIR", dir)

	got, err := (&Config{}).DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if want := filepath.Join(dir, "values.sqlite"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got, err = (&Config{DB: "/tmp/tempo/values.db"}).DBPath()
	if err != nil || got != "/tmp/tempo/values.db" {
		t.Fatalf("expected configured path, got %q %v", got, err)
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	if err := SaveConfig(&Config{Format: "seed"}); err != nil {
		t.Fatalf("SaveConfig(seed): %v", err)
	}

	const n = 32
	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := SaveConfig(&Config{Format: fmt.Sprintf("fmt-%d", i)}); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	path, _ := ConfigPath()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		t.Fatalf("config is not valid JSON: %v\n%s", err, b)
	}
	if !strings.HasPrefix(cfg.Format, "fmt-") {
		t.Fatalf("expected one writer to win, got %q", cfg.Format)
	}
}

func TestLoadConfigFile_IgnoresEnvironment(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())
	if err := SaveConfig(&Config{Locale: "en"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	t.Setenv("TEMPO_LOCALE", "de")

	cfg, err := LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Locale != "en" {
		t.Fatalf("expected the file's locale, got %q", cfg.Locale)
	}
}
