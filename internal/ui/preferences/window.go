package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	coffee   *widget.Entry
	step     *widget.Entry
	theme    *widget.Select
	pulse    *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("V60 Timer Settings")

	coffee := widget.NewEntry()
	step := widget.NewEntry()

	options := make([]string, 0, len(Themes))
	for _, theme := range Themes {
		options = append(options, string(theme))
	}
	themeSelect := widget.NewSelect(options, nil)
	pulse := widget.NewCheck("Pulse indicator while pouring", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Brew", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default coffee dose"), coffee, widget.NewLabel("g")),
		container.NewHBox(widget.NewLabel("Skip step"), step, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Theme"), themeSelect),
		pulse,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 260))

	prefs := &Window{
		window: window,
		onSave: onSave,
		coffee: coffee,
		step:   step,
		theme:  themeSelect,
		pulse:  pulse,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.coffee.SetText(fmt.Sprintf("%d", settings.CoffeeAmount))
	prefs.step.SetText(fmt.Sprintf("%d", int(settings.AdjustStep.Seconds())))
	prefs.theme.SetSelected(string(settings.Theme))
	prefs.pulse.SetChecked(settings.PulsePour)
}

func (prefs *Window) handleSave() {
	settings := prefs.collect()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// collect reads the form. Unparseable fields keep their previous value.
func (prefs *Window) collect() Settings {
	settings := prefs.settings

	if grams, ok := parsePositiveInt(prefs.coffee.Text); ok {
		settings.CoffeeAmount = grams
	}
	if seconds, ok := parsePositiveInt(prefs.step.Text); ok {
		settings.AdjustStep = time.Duration(seconds) * time.Second
	}
	if theme, ok := ParseTheme(prefs.theme.Selected); ok {
		settings.Theme = theme
	}
	settings.PulsePour = prefs.pulse.Checked
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
