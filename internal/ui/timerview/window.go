package timerview

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"v60timer/internal/core/brew"
	"v60timer/internal/core/model"
	"v60timer/internal/core/schedule"
	"v60timer/internal/ui/animation"
	"v60timer/internal/ui/style"
)

// Controller is the subset of brew.Timer the window drives.
type Controller interface {
	Snapshot() brew.Snapshot
	Config() model.BrewConfig
	Start()
	TogglePlay()
	Reset()
	SkipForward()
	SkipBack()
	AdjustCoffee(delta int)
	SetSplitA(ml int)
}

// Window manages the main timer UI.
type Window struct {
	window     fyne.Window
	controller Controller
	pulse      *animation.Engine
	pulseOn    bool

	doseRow     *fyne.Container
	doseMinus   *widget.Button
	dosePlus    *widget.Button
	doseLabel   *canvas.Text
	waterLabel  *widget.Label
	face        *fyne.Container
	timeText    *canvas.Text
	phaseLabel  *widget.Label
	phaseWater  *widget.Label
	progress    *widget.ProgressBar
	backButton  *widget.Button
	fwdButton   *widget.Button
	startButton *widget.Button
	playButton  *widget.Button
	resetButton *widget.Button
	timeline    *fyne.Container
	timelineBox *fyne.Container
	indicator   *canvas.Circle

	groundsValue *widget.Label
	yieldValue   *widget.Label
	cupsValue    *widget.Label
	gramsValue   *widget.Label
	slider       *widget.Slider

	lastTimelineKey string
}

// New creates the main timer window.
func New(app fyne.App, controller Controller) *Window {
	window := app.NewWindow("V60 Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:     window,
		controller: controller,
	}
	view.pulse = animation.New(animation.DefaultConfig(), view.setIndicator)

	window.SetContent(view.build())
	window.Resize(fyne.NewSize(420, 720))
	view.Refresh()
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Window returns the underlying Fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// SetPulse enables or disables the pour indicator animation.
func (view *Window) SetPulse(enabled bool) {
	view.pulseOn = enabled
	if !enabled {
		view.pulse.Stop()
	}
}

// Close stops background animation.
func (view *Window) Close() {
	view.pulse.Stop()
}

// Refresh re-renders from the controller's current snapshot.
func (view *Window) Refresh() {
	view.Render(view.controller.Snapshot())
}

// Render updates every widget from snapshot. Call it on the Fyne thread.
func (view *Window) Render(snapshot brew.Snapshot) {
	status := snapshot.Status
	active := status == brew.StatusRunning || status == brew.StatusPaused

	view.doseLabel.Text = fmt.Sprintf("%dg", snapshot.CoffeeAmount)
	view.doseLabel.Refresh()
	view.waterLabel.SetText(fmt.Sprintf("%dg water", schedule.RoundGrams(snapshot.TotalWater)))
	if snapshot.CoffeeAmount <= 1 {
		view.doseMinus.Disable()
	} else {
		view.doseMinus.Enable()
	}
	if status == brew.StatusRunning {
		view.doseRow.Hide()
	} else {
		view.doseRow.Show()
	}

	view.timeText.Text = snapshot.Time
	view.timeText.Color = style.Primary
	if status == brew.StatusPaused {
		view.timeText.Color = style.Accent
	}
	view.timeText.Refresh()
	view.phaseLabel.SetText(fmt.Sprintf("Phase %d of %d · %s", snapshot.PhaseNumber, snapshot.PhaseCount, snapshot.Phase.Description))
	view.phaseWater.SetText(fmt.Sprintf("%dg", schedule.RoundGrams(snapshot.CumulativeWater)))
	view.progress.SetValue(snapshot.Progress)

	step := view.controller.Config().AdjustSeconds()
	view.backButton.SetText(fmt.Sprintf("-%ds", step))
	view.fwdButton.SetText(fmt.Sprintf("+%ds", step))
	if snapshot.Elapsed < step || status == brew.StatusFinished {
		view.backButton.Disable()
	} else {
		view.backButton.Enable()
	}
	if status == brew.StatusFinished {
		view.fwdButton.Disable()
	} else {
		view.fwdButton.Enable()
	}

	if active || status == brew.StatusFinished {
		view.face.Show()
		view.timelineBox.Show()
	} else {
		view.face.Hide()
		view.timelineBox.Hide()
	}

	view.renderControls(status)
	view.renderTimeline(snapshot)
	view.renderSplit(snapshot)
	view.renderPulse(snapshot)
}

func (view *Window) renderControls(status brew.Status) {
	switch status {
	case brew.StatusRunning:
		view.startButton.Hide()
		view.playButton.Show()
		view.playButton.SetText("Pause")
		view.playButton.SetIcon(theme.MediaPauseIcon())
		view.resetButton.Show()
	case brew.StatusPaused:
		view.startButton.Hide()
		view.playButton.Show()
		view.playButton.SetText("Resume")
		view.playButton.SetIcon(theme.MediaPlayIcon())
		view.resetButton.Show()
	case brew.StatusFinished:
		view.startButton.Show()
		view.startButton.SetText("Brew again")
		view.playButton.Hide()
		view.resetButton.Show()
	default:
		view.startButton.Show()
		view.startButton.SetText("Start")
		view.playButton.Hide()
		view.resetButton.Hide()
	}
}

func (view *Window) renderTimeline(snapshot brew.Snapshot) {
	key := fmt.Sprintf("%d/%d/%d/%t", snapshot.CoffeeAmount, snapshot.PhaseID, len(snapshot.Upcoming), snapshot.InPourWindow)
	if key == view.lastTimelineKey {
		return
	}
	view.lastTimelineKey = key

	rows := make([]fyne.CanvasObject, 0, len(snapshot.Upcoming))
	for index, phase := range snapshot.Upcoming {
		rows = append(rows, timelineRow(phase, index == 0, index == 0 && snapshot.InPourWindow))
	}
	view.timeline.Objects = rows
	view.timeline.Refresh()
}

func (view *Window) renderSplit(snapshot brew.Snapshot) {
	cups := snapshot.Split
	view.groundsValue.SetText(fmt.Sprintf("%d g", snapshot.CoffeeAmount))
	view.yieldValue.SetText(fmt.Sprintf("%d ml", cups.ExpectedYield))
	view.cupsValue.SetText(fmt.Sprintf("A: %d ml • B: %d ml", cups.CupA, cups.CupB))
	view.gramsValue.SetText(fmt.Sprintf("A: %d g • B: %d g", cups.GroundsA, cups.GroundsB))

	// Assign fields directly: SetValue would call OnChanged and loop back.
	view.slider.Min = 0
	view.slider.Max = math.Max(1, float64(cups.ExpectedYield))
	view.slider.Step = float64(cups.StepMl)
	view.slider.Value = float64(cups.CupA)
	view.slider.Refresh()
}

func (view *Window) renderPulse(snapshot brew.Snapshot) {
	pouring := snapshot.InPourWindow && snapshot.Status == brew.StatusRunning
	if pouring {
		view.indicator.Show()
	} else {
		view.indicator.Hide()
	}
	if pouring && view.pulseOn {
		view.pulse.Start(context.Background())
		return
	}
	view.pulse.Stop()
}

func (view *Window) setIndicator(bright bool) {
	fill := style.PourDim
	if bright {
		fill = style.PourLight
	}
	fyne.Do(func() {
		view.indicator.FillColor = fill
		view.indicator.Refresh()
	})
}

func (view *Window) act(action func()) {
	action()
	view.Refresh()
}

func (view *Window) build() fyne.CanvasObject {
	title := canvas.NewText("V60 Timer", style.Primary)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 22

	view.doseLabel = canvas.NewText("", style.Primary)
	view.doseLabel.TextStyle = fyne.TextStyle{Bold: true}
	view.doseLabel.TextSize = 20
	view.doseLabel.Alignment = fyne.TextAlignCenter
	view.waterLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	view.doseMinus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		view.act(func() { view.controller.AdjustCoffee(-1) })
	})
	view.dosePlus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		view.act(func() { view.controller.AdjustCoffee(1) })
	})
	view.doseRow = container.NewHBox(
		layout.NewSpacer(),
		view.doseMinus,
		container.NewVBox(view.doseLabel, view.waterLabel),
		view.dosePlus,
		layout.NewSpacer(),
	)

	view.timeText = canvas.NewText("00:00", style.Primary)
	view.timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.timeText.TextSize = 48
	view.timeText.Alignment = fyne.TextAlignCenter
	view.phaseLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	view.phaseWater = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	view.progress = widget.NewProgressBar()
	view.progress.Max = 100
	view.progress.TextFormatter = func() string { return "" }
	view.backButton = widget.NewButtonWithIcon("", theme.MediaFastRewindIcon(), func() {
		view.act(view.controller.SkipBack)
	})
	view.fwdButton = widget.NewButtonWithIcon("", theme.MediaFastForwardIcon(), func() {
		view.act(view.controller.SkipForward)
	})
	view.indicator = canvas.NewCircle(style.PourLight)
	view.indicator.Hide()
	view.face = container.NewVBox(
		container.NewBorder(nil, nil, view.backButton, view.fwdButton, view.timeText),
		container.NewHBox(layout.NewSpacer(), container.NewGridWrap(fyne.NewSize(12, 12), view.indicator), view.phaseLabel, layout.NewSpacer()),
		view.phaseWater,
		view.progress,
	)

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		view.act(view.controller.Start)
	})
	view.startButton.Importance = widget.HighImportance
	view.playButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		view.act(view.controller.TogglePlay)
	})
	view.resetButton = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		view.act(view.controller.Reset)
	})
	controls := container.NewHBox(layout.NewSpacer(), view.startButton, view.playButton, view.resetButton, layout.NewSpacer())

	view.timeline = container.NewVBox()
	view.timelineBox = container.NewVBox(widget.NewLabelWithStyle("Timeline", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), view.timeline)

	view.groundsValue = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
	view.yieldValue = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
	view.cupsValue = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
	view.gramsValue = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
	view.slider = widget.NewSlider(0, 1)
	view.slider.OnChanged = func(value float64) {
		view.act(func() { view.controller.SetSplitA(int(math.Round(value))) })
	}
	splitPanel := widget.NewCard("", "", container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Coffee grounds"), view.groundsValue),
		container.NewBorder(nil, nil, widget.NewLabel("Expected yield"), view.yieldValue),
		container.NewBorder(nil, nil, widget.NewLabel("Split dose"), container.NewVBox(view.cupsValue, view.gramsValue)),
		view.slider,
	))

	content := container.NewVBox(
		title,
		view.doseRow,
		view.face,
		controls,
		view.timelineBox,
		splitPanel,
	)
	return container.NewVScroll(container.NewPadded(content))
}

func timelineRow(phase schedule.Phase, active, pouring bool) fyne.CanvasObject {
	var fill color.Color = color.Transparent
	dot := style.Inactive
	switch {
	case pouring:
		fill = withAlpha(style.PourLight, 0x40)
		dot = style.PourLight
	case active:
		fill = withAlpha(style.Primary, 0x40)
		dot = style.Primary
	}

	background := canvas.NewRectangle(fill)
	background.CornerRadius = 8
	marker := canvas.NewCircle(dot)

	name := widget.NewLabelWithStyle(phase.Description, fyne.TextAlignLeading, fyne.TextStyle{Bold: active})
	window := widget.NewLabelWithStyle(
		fmt.Sprintf("%s - %s", brew.FormatTime(phase.StartTime), brew.FormatTime(phase.EndTime)),
		fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true, Bold: active})
	water := widget.NewLabelWithStyle(fmt.Sprintf("%dg", schedule.RoundGrams(phase.CumulativeWater)),
		fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})

	row := container.NewBorder(nil, nil,
		container.NewHBox(container.NewCenter(container.NewGridWrap(fyne.NewSize(10, 10), marker)), name),
		container.NewVBox(window, water),
	)
	return container.NewStack(background, row)
}

func withAlpha(value color.NRGBA, alpha uint8) color.NRGBA {
	value.A = alpha
	return value
}
