package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"v60timer/internal/core/brew"
)

const menuTitle = "V60 Timer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePlay  func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	playItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	showItem   *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks. app may be nil
// on drivers without a system tray.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.showItem = fyne.NewMenuItem("Show timer", func() { call(manager.callbacks.OnShow) })
	manager.playItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnTogglePlay) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })
	manager.prefsItem = fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) })
	manager.quitItem = fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) })
	manager.quitItem.IsQuit = true

	manager.SetStatus(brew.Snapshot{State: brew.NewState(brew.DefaultCoffee), Time: brew.FormatTime(0)})
	return manager
}

// SetStatus mirrors a brew snapshot into the menu.
func (manager *Manager) SetStatus(snapshot brew.Snapshot) {
	manager.statusItem.Label = StatusLabel(snapshot)
	switch snapshot.Status {
	case brew.StatusRunning:
		manager.playItem.Label = "Pause"
	case brew.StatusPaused:
		manager.playItem.Label = "Resume"
	default:
		manager.playItem.Label = "Start brew"
	}
	manager.resetItem.Disabled = snapshot.Status == brew.StatusIdle
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.playItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.prefsItem,
		manager.quitItem,
	)
}

// StatusLabel renders the one-line brew summary shown in the tray.
func StatusLabel(snapshot brew.Snapshot) string {
	switch snapshot.Status {
	case brew.StatusRunning:
		return fmt.Sprintf("%s · %s", snapshot.Time, snapshot.Phase.Description)
	case brew.StatusPaused:
		return fmt.Sprintf("%s · %s (paused)", snapshot.Time, snapshot.Phase.Description)
	case brew.StatusFinished:
		return "Brew finished"
	default:
		return fmt.Sprintf("Ready · %dg coffee", snapshot.CoffeeAmount)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
