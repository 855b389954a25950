package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"v60timer/internal/platform"
	"v60timer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

const (
	maxCoffeeGrams       = 200
	maxAdjustStepSeconds = 60
)

type yamlSettings struct {
	CoffeeGrams       int    `yaml:"coffee_grams"`
	AdjustStepSeconds int    `yaml:"adjust_step_seconds"`
	Theme             string `yaml:"theme"`
	PulsePour         *bool  `yaml:"pulse_pour"`
}

// DefaultPath returns the settings file location for appName.
func DefaultPath(service platform.Service, appName string) (string, error) {
	appDir, err := service.AppDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(appDir, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	pulse := settings.PulsePour
	fileData := yamlSettings{
		CoffeeGrams:       settings.CoffeeAmount,
		AdjustStepSeconds: int(settings.AdjustStep / time.Second),
		Theme:             string(settings.Theme),
		PulsePour:         &pulse,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.CoffeeGrams > 0 && fileData.CoffeeGrams <= maxCoffeeGrams {
		settings.CoffeeAmount = fileData.CoffeeGrams
	}
	if fileData.AdjustStepSeconds > 0 && fileData.AdjustStepSeconds <= maxAdjustStepSeconds {
		settings.AdjustStep = time.Duration(fileData.AdjustStepSeconds) * time.Second
	}
	if theme, ok := preferences.ParseTheme(fileData.Theme); ok {
		settings.Theme = theme
	}
	if fileData.PulsePour != nil {
		settings.PulsePour = *fileData.PulsePour
	}
}
