package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestParseTheme(t *testing.T) {
	if theme, ok := ParseTheme("dark"); !ok || theme != ThemeDark {
		t.Errorf("ParseTheme(dark) = %q, %v", theme, ok)
	}
	if theme, ok := ParseTheme("sepia"); ok || theme != ThemeSystem {
		t.Errorf("ParseTheme(sepia) = %q, %v, want system fallback", theme, ok)
	}
}

func TestWindow_SaveCollectsForm(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})

	prefs.coffee.SetText("20")
	prefs.step.SetText("10")
	prefs.theme.SetSelected("dark")
	prefs.pulse.SetChecked(false)
	prefs.handleSave()

	if len(saved) != 1 {
		t.Fatalf("onSave called %d times, want 1", len(saved))
	}
	want := Settings{CoffeeAmount: 20, AdjustStep: 10 * time.Second, Theme: ThemeDark, PulsePour: false}
	if saved[0] != want {
		t.Errorf("saved %+v, want %+v", saved[0], want)
	}
}

func TestWindow_InvalidEntriesKeepPrevious(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := New(app, DefaultSettings(), nil)
	prefs.coffee.SetText("zero")
	prefs.step.SetText("-3")

	got := prefs.collect()
	if got.CoffeeAmount != 15 || got.AdjustStep != 5*time.Second {
		t.Errorf("collect = %+v, want defaults for invalid entries", got)
	}
}
