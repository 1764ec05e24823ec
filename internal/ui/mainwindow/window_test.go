package mainwindow

import (
	"errors"
	"testing"

	"longautotyper/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAppliesForm(t *testing.T) {
	app := test.NewTempApp(t)
	var saved []model.Settings
	view := New(app, model.DefaultSettings(), Callbacks{
		OnSave: func(settings model.Settings) error {
			saved = append(saved, settings)
			return nil
		},
	})

	view.manualText.SetText("typed by hand")
	view.delay.SetText("0.05")
	view.countdown.SetText("2")
	test.Tap(view.saveButton)

	require.Len(t, saved, 1)
	assert.Equal(t, "typed by hand", saved[0].ManualText)
	assert.Equal(t, 2, saved[0].CountdownSeconds)
	assert.Equal(t, "Settings saved.", view.status.Text)
}

func TestSaveReportsInvalidInput(t *testing.T) {
	app := test.NewTempApp(t)
	called := false
	view := New(app, model.DefaultSettings(), Callbacks{
		OnSave: func(model.Settings) error {
			called = true
			return nil
		},
	})

	view.delay.SetText("quick")
	test.Tap(view.saveButton)
	assert.False(t, called)
	assert.Contains(t, view.status.Text, "Not saved")
}

func TestTypeTextSavesFirst(t *testing.T) {
	app := test.NewTempApp(t)
	var order []string
	view := New(app, model.DefaultSettings(), Callbacks{
		OnSave: func(model.Settings) error {
			order = append(order, "save")
			return errors.New("read-only disk")
		},
		OnTypeText: func() { order = append(order, "type") },
	})

	test.Tap(view.textButton)
	assert.Equal(t, []string{"save", "type"}, order)
}

func TestRunControlsFollowStatus(t *testing.T) {
	app := test.NewTempApp(t)
	stops := 0
	view := New(app, model.DefaultSettings(), Callbacks{OnStop: func() { stops++ }})

	assert.True(t, view.stopButton.Disabled())
	view.handleKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
	assert.Equal(t, 0, stops)

	view.SetStatus(true, "Typing 1/4")
	assert.Equal(t, "Typing 1/4", view.status.Text)
	assert.False(t, view.stopButton.Disabled())
	assert.True(t, view.clipboardButton.Disabled())

	view.handleKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	view.handleKey(&fyne.KeyEvent{Name: fyne.KeyA})
	assert.Equal(t, 1, stops)

	view.SetStatus(false, "Typing stopped.")
	assert.True(t, view.stopButton.Disabled())
	assert.False(t, view.textButton.Disabled())
}

func TestUpdateSettingsShowsHotkeys(t *testing.T) {
	app := test.NewTempApp(t)
	settings := model.DefaultSettings()
	settings.StartHotkey = "f9"
	settings.StopHotkey = "ctrl+alt+period"
	view := New(app, settings, Callbacks{})

	assert.Contains(t, view.hotkeys.Text, "F9")
	assert.Contains(t, view.hotkeys.Text, "Ctrl+Alt+.")
}
