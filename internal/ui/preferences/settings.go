package preferences

import (
	"time"

	"v60timer/internal/core/brew"
	"v60timer/internal/core/model"
)

// Theme selects the colour variant of the UI.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Themes lists the selectable themes in display order.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSystem}

// ParseTheme maps a stored value to a Theme, falling back to ThemeSystem.
func ParseTheme(value string) (Theme, bool) {
	for _, theme := range Themes {
		if string(theme) == value {
			return theme, true
		}
	}
	return ThemeSystem, false
}

// Settings defines editable user preferences.
type Settings struct {
	CoffeeAmount int
	AdjustStep   time.Duration
	Theme        Theme
	PulsePour    bool
}

// DefaultSettings returns default settings for v60timer.
func DefaultSettings() Settings {
	return Settings{
		CoffeeAmount: brew.DefaultCoffee,
		AdjustStep:   5 * time.Second,
		Theme:        ThemeSystem,
		PulsePour:    true,
	}
}

// BrewConfig converts settings to a BrewConfig.
func (settings Settings) BrewConfig() model.BrewConfig {
	return model.BrewConfig{
		CoffeeAmount: settings.CoffeeAmount,
		AdjustStep:   settings.AdjustStep,
	}
}
