package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"v60timer/internal/logging"
	"v60timer/internal/platform"
	"v60timer/internal/storage"
	"v60timer/internal/ui/preferences"
)

const appName = "v60timer"

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	settingsOnce sync.Once
	settings     preferences.Settings
	settingsErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

// settingsPath returns the --config override or the per-user default.
func (c *commandContext) settingsPath() (string, error) {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path, nil
		}
	}
	return storage.DefaultPath(platform.NewService(), appName)
}

func (c *commandContext) ensureSettings() (preferences.Settings, error) {
	c.settingsOnce.Do(func() {
		path, err := c.settingsPath()
		if err != nil {
			c.settings, c.settingsErr = preferences.DefaultSettings(), err
			return
		}
		c.settings, c.settingsErr = storage.LoadSettings(path)
	})
	return c.settings, c.settingsErr
}

func (c *commandContext) newLogger(output io.Writer) (*slog.Logger, error) {
	opts := logging.Options{Output: output}
	if c.logLevelFlag != nil {
		opts.Level = *c.logLevelFlag
	}
	if c.logFormatFlag != nil {
		opts.Format = *c.logFormatFlag
	}
	return logging.New(opts)
}

// coffeeOrDefault resolves a --coffee flag, falling back to the saved dose.
func (c *commandContext) coffeeOrDefault(flag int, set bool) (int, error) {
	if set {
		if flag < 1 {
			return 0, fmt.Errorf("coffee dose must be at least 1 g, got %d", flag)
		}
		return flag, nil
	}
	settings, err := c.ensureSettings()
	if err != nil {
		return 0, err
	}
	return settings.CoffeeAmount, nil
}
