package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"v60timer/internal/core/brew"
	"v60timer/internal/logging"
	"v60timer/internal/platform"
	"v60timer/internal/storage"
	"v60timer/internal/ui/preferences"
	"v60timer/internal/ui/style"
	"v60timer/internal/ui/timerview"
	"v60timer/internal/ui/tray"
	"v60timer/resources"
)

const appID = "io.v60timer.app"

func newGUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the brew timer window (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, ctx)
		},
	}
}

func runGUI(cmd *cobra.Command, ctx *commandContext) error {
	logger, err := ctx.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = logging.NewComponentLogger(logger, "gui")

	settingsPath, err := ctx.settingsPath()
	if err != nil {
		return err
	}
	settings, err := ctx.ensureSettings()
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "path", settingsPath, "err", err)
	}

	guard, err := platform.AcquireSingleInstance(filepath.Dir(settingsPath))
	if errors.Is(err, platform.ErrAlreadyRunning) {
		return fmt.Errorf("%s is already running", appName)
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	idleIcon := resources.MustLogo(resources.LogoIdle)
	brewingIcon := resources.MustLogo(resources.LogoBrewing)
	fyneApp.SetIcon(idleIcon)
	fyneApp.Settings().SetTheme(style.New(settings.Theme))

	timer := brew.New(settings.BrewConfig(), brew.Config{TickInterval: time.Second, Logger: logger})
	defer timer.Close()

	view := timerview.New(fyneApp, timer)
	defer view.Close()
	view.SetPulse(settings.PulsePour)

	applySettings := func(updated preferences.Settings) {
		timer.UpdateConfig(updated.BrewConfig())
		fyneApp.Settings().SetTheme(style.New(updated.Theme))
		view.SetPulse(updated.PulsePour)
		view.Refresh()
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		applySettings(updated)
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			logger.Error("save settings", "path", settingsPath, "err", err)
		}
	})

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: view.Show,
			OnTogglePlay: func() {
				timer.TogglePlay()
			},
			OnReset: func() {
				timer.Reset()
			},
			OnPreferences: prefsWindow.Show,
			OnQuit: func() {
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(idleIcon)
		// The brew keeps running in the tray when the window is closed.
		view.Window().SetCloseIntercept(func() {
			view.Window().Hide()
		})
	} else {
		logger.Info("system tray unsupported, closing the window quits")
		view.Window().SetMaster()
	}

	watchCtx, cancelWatch := context.WithCancel(cmd.Context())
	defer cancelWatch()
	go func() {
		err := storage.WatchSettings(watchCtx, settingsPath, logger, func(updated preferences.Settings) {
			fyne.Do(func() {
				applySettings(updated)
				prefsWindow.UpdateSettings(updated)
			})
		})
		if err != nil {
			logger.Warn("settings watcher stopped", "err", err)
		}
	}()

	trayBrewing := false
	events := timer.Subscribe(16)
	go pumpEvents(events, logger, func(snapshot brew.Snapshot) {
		view.Render(snapshot)
		if trayManager == nil {
			return
		}
		trayManager.SetStatus(snapshot)
		if snapshot.Running() == trayBrewing {
			return
		}
		trayBrewing = snapshot.Running()
		if trayBrewing {
			desktopApp.SetSystemTrayIcon(brewingIcon)
		} else {
			desktopApp.SetSystemTrayIcon(idleIcon)
		}
	})

	logger.Info("timer window starting", "settings", settingsPath, "coffee_g", settings.CoffeeAmount)
	view.Show()
	fyneApp.Run()
	return nil
}

// pumpEvents renders each timer event on the Fyne thread until the timer
// closes its channel.
func pumpEvents(events <-chan brew.Event, logger *slog.Logger, render func(brew.Snapshot)) {
	for event := range events {
		snapshot := event.Snapshot
		if event.Type == brew.EventStateChange {
			logger.Debug("brew state", "status", snapshot.Status, "elapsed", snapshot.Time)
		}
		fyne.Do(func() {
			render(snapshot)
		})
	}
}
