package style

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"v60timer/internal/ui/preferences"
)

// Brand colours shared by the timer widgets.
var (
	Primary   = color.NRGBA{R: 139, G: 92, B: 246, A: 255}
	Accent    = color.NRGBA{R: 236, G: 72, B: 153, A: 255}
	PourLight = color.NRGBA{R: 34, G: 197, B: 94, A: 255}
	PourDim   = color.NRGBA{R: 22, G: 101, B: 52, A: 255}
	Inactive  = color.NRGBA{R: 148, G: 163, B: 184, A: 255}
)

type appTheme struct {
	fyne.Theme
	variant  fyne.ThemeVariant
	override bool
}

// New returns the application theme for the selected preference. Light and
// dark force a variant; system follows the desktop.
func New(mode preferences.Theme) fyne.Theme {
	base := &appTheme{Theme: theme.DefaultTheme()}
	switch mode {
	case preferences.ThemeLight:
		base.variant = theme.VariantLight
		base.override = true
	case preferences.ThemeDark:
		base.variant = theme.VariantDark
		base.override = true
	}
	return base
}

func (current *appTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if current.override {
		variant = current.variant
	}
	switch name {
	case theme.ColorNamePrimary:
		return Primary
	case theme.ColorNameFocus:
		return color.NRGBA{R: Primary.R, G: Primary.G, B: Primary.B, A: 0x7f}
	}
	return current.Theme.Color(name, variant)
}
