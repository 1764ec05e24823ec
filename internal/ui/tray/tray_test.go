package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesktop struct {
	menu  *fyne.Menu
	icon  fyne.Resource
	menus int
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menu = menu
	app.menus++
}

func (app *fakeDesktop) SetSystemTrayIcon(icon fyne.Resource) {
	app.icon = icon
}

func (app *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func item(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, entry := range menu.Items {
		if entry.Label == label {
			return entry
		}
	}
	require.Failf(t, "menu item missing", "label %q", label)
	return nil
}

func TestMenuLayoutAndCallbacks(t *testing.T) {
	desktop := &fakeDesktop{}
	var calls []string
	New(desktop, Icons{}, Callbacks{
		OnTypeClipboard: func() { calls = append(calls, "clipboard") },
		OnTypeText:      func() { calls = append(calls, "text") },
		OnStop:          func() { calls = append(calls, "stop") },
		OnOpen:          func() { calls = append(calls, "open") },
		OnQuit:          func() { calls = append(calls, "quit") },
	})

	require.NotNil(t, desktop.menu)
	assert.True(t, item(t, desktop.menu, "Status: Idle").Disabled)
	assert.True(t, item(t, desktop.menu, "Stop Typing").Disabled)

	for _, label := range []string{"Type Clipboard", "Type Text", "Stop Typing", "Open LongAutoTyper", "Quit"} {
		item(t, desktop.menu, label).Action()
	}
	assert.Equal(t, []string{"clipboard", "text", "stop", "open", "quit"}, calls)
}

func TestSetStatusTogglesActionsAndIcon(t *testing.T) {
	desktop := &fakeDesktop{}
	idle := fyne.NewStaticResource("idle.svg", []byte("<svg/>"))
	typing := fyne.NewStaticResource("typing.svg", []byte("<svg/>"))
	manager := New(desktop, Icons{Idle: idle, Typing: typing}, Callbacks{})
	assert.Equal(t, idle, desktop.icon)

	manager.SetStatus(true, "Typing 3/10")
	assert.True(t, manager.typing)
	assert.Equal(t, typing, desktop.icon)
	assert.False(t, item(t, desktop.menu, "Stop Typing").Disabled)
	assert.True(t, item(t, desktop.menu, "Type Clipboard").Disabled)
	item(t, desktop.menu, "Status: Typing 3/10")

	manager.SetStatus(false, "Typing finished.")
	assert.Equal(t, idle, desktop.icon)
	assert.True(t, item(t, desktop.menu, "Stop Typing").Disabled)
	assert.False(t, item(t, desktop.menu, "Type Text").Disabled)
}
