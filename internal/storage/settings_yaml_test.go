package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"v60timer/internal/logging"
	"v60timer/internal/ui/preferences"
)

type fixedDirService struct {
	dir string
}

func (service fixedDirService) GetConfigDir() (string, error) {
	return service.dir, nil
}

func (service fixedDirService) AppDir(appName string) (string, error) {
	return filepath.Join(service.dir, appName), nil
}

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), settingsFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath(fixedDirService{dir: "/cfg"}, "v60timer")
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if want := filepath.Join("/cfg", "v60timer", "settings.yaml"); path != want {
		t.Errorf("DefaultPath = %q, want %q", path, want)
	}
}

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings != preferences.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestSaveLoad_NonDefaultValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)
	want := preferences.Settings{
		CoffeeAmount: 22,
		AdjustStep:   10 * time.Second,
		Theme:        preferences.ThemeDark,
		PulsePour:    false,
	}
	if err := SaveSettings(path, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got != want {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestLoadSettings_IgnoresInvalidValues(t *testing.T) {
	path := writeSettingsFile(t, `
coffee_grams: -4
adjust_step_seconds: 600
theme: neon
`)
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got != preferences.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", got)
	}
}

func TestLoadSettings_PartialFile(t *testing.T) {
	path := writeSettingsFile(t, "coffee_grams: 18\n")
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got.CoffeeAmount != 18 {
		t.Errorf("CoffeeAmount = %d, want 18", got.CoffeeAmount)
	}
	if !got.PulsePour {
		t.Errorf("PulsePour = false, want default true")
	}
}

func TestLoadSettings_BadYAML(t *testing.T) {
	path := writeSettingsFile(t, "coffee_grams: [\n")
	got, err := LoadSettings(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if got != preferences.DefaultSettings() {
		t.Errorf("settings on error = %+v, want defaults", got)
	}
}

func TestWatchSettings_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan preferences.Settings, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchSettings(ctx, path, logging.NewNop(), func(settings preferences.Settings) {
			changes <- settings
		})
	}()

	updated := preferences.DefaultSettings()
	updated.CoffeeAmount = 21

	deadline := time.After(5 * time.Second)
	retry := time.NewTicker(100 * time.Millisecond)
	defer retry.Stop()
	for {
		// The watcher starts asynchronously, so keep writing until it reports.
		if err := SaveSettings(path, updated); err != nil {
			t.Fatalf("SaveSettings: %v", err)
		}
		select {
		case got := <-changes:
			if got.CoffeeAmount != 21 {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("WatchSettings returned %v", err)
			}
			return
		case <-retry.C:
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
