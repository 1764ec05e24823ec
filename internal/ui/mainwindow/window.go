// Package mainwindow is the LongAutoTyper window: manual text, pacing
// preferences and run controls.
package mainwindow

import (
	"fmt"

	"longautotyper/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnSave          func(model.Settings) error
	OnTypeClipboard func()
	OnTypeText      func()
	OnStop          func()
}

// Window handles the main UI. Its methods must be called on the UI goroutine.
type Window struct {
	window    fyne.Window
	settings  model.Settings
	callbacks Callbacks
	typing    bool

	manualText *widget.Entry
	delay      *widget.Entry
	countdown  *widget.Entry
	hotkeys    *widget.Label
	status     *widget.Label

	saveButton      *widget.Button
	clipboardButton *widget.Button
	textButton      *widget.Button
	stopButton      *widget.Button
}

// New creates the main window. It is hidden until Show.
func New(app fyne.App, settings model.Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("LongAutoTyper")

	view := &Window{
		window:     window,
		callbacks:  callbacks,
		manualText: widget.NewMultiLineEntry(),
		delay:      widget.NewEntry(),
		countdown:  widget.NewEntry(),
		hotkeys:    widget.NewLabel(""),
		status:     widget.NewLabel("Idle"),
	}
	view.manualText.SetPlaceHolder("Text to type")
	view.manualText.Wrapping = fyne.TextWrapWord
	view.status.Wrapping = fyne.TextWrapWord

	view.saveButton = widget.NewButton("Save", func() { view.save() })
	view.clipboardButton = widget.NewButton("Type Clipboard", view.typeClipboard)
	view.textButton = widget.NewButton("Type Text", view.typeText)
	view.stopButton = widget.NewButton("Stop", view.stop)
	view.stopButton.Disable()

	form := widget.NewForm(
		widget.NewFormItem("Delay per character (s)", view.delay),
		widget.NewFormItem("Countdown (s)", view.countdown),
	)
	buttons := container.NewHBox(view.saveButton, layout.NewSpacer(), view.clipboardButton, view.textButton, view.stopButton)
	footer := container.NewVBox(form, view.hotkeys, buttons, widget.NewSeparator(), view.status)
	window.SetContent(container.NewBorder(
		widget.NewLabelWithStyle("Manual text", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		footer, nil, nil,
		view.manualText,
	))
	window.Resize(fyne.NewSize(520, 440))
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Canvas().SetOnTypedKey(view.handleKey)

	view.UpdateSettings(settings)
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (view *Window) UpdateSettings(settings model.Settings) {
	view.settings = settings
	values := valuesFromSettings(settings)
	view.manualText.SetText(values.ManualText)
	view.delay.SetText(values.Delay)
	view.countdown.SetText(values.Countdown)
	view.hotkeys.SetText(fmt.Sprintf("Start: %s    Stop: %s or Delete",
		model.DisplayBinding(settings.StartHotkey),
		model.DisplayBinding(settings.StopHotkey),
	))
}

// SetStatus shows message and toggles the run controls.
func (view *Window) SetStatus(typing bool, message string) {
	view.status.SetText(message)
	if view.typing == typing {
		return
	}
	view.typing = typing
	if typing {
		view.clipboardButton.Disable()
		view.textButton.Disable()
		view.stopButton.Enable()
		// Keys typed into the window must reach handleKey instead of the entry.
		view.window.Canvas().Unfocus()
	} else {
		view.clipboardButton.Enable()
		view.textButton.Enable()
		view.stopButton.Disable()
	}
}

func (view *Window) handleKey(event *fyne.KeyEvent) {
	if !view.typing {
		return
	}
	switch event.Name {
	case fyne.KeyDelete, fyne.KeyBackspace, fyne.KeyEscape:
		view.stop()
	}
}

func (view *Window) save() bool {
	values := formValues{
		ManualText: view.manualText.Text,
		Delay:      view.delay.Text,
		Countdown:  view.countdown.Text,
	}
	settings, err := values.apply(view.settings)
	if err != nil {
		view.status.SetText(fmt.Sprintf("Not saved: %v", err))
		return false
	}
	view.UpdateSettings(settings)
	if view.callbacks.OnSave != nil {
		if err := view.callbacks.OnSave(settings); err != nil {
			view.status.SetText(fmt.Sprintf("Settings applied but not saved: %v", err))
			return true
		}
	}
	view.status.SetText("Settings saved.")
	return true
}

func (view *Window) typeClipboard() {
	if view.callbacks.OnTypeClipboard != nil {
		view.callbacks.OnTypeClipboard()
	}
}

func (view *Window) typeText() {
	if !view.save() {
		return
	}
	if view.callbacks.OnTypeText != nil {
		view.callbacks.OnTypeText()
	}
}

func (view *Window) stop() {
	if view.callbacks.OnStop != nil {
		view.callbacks.OnStop()
	}
}
