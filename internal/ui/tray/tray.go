package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "LongAutoTyper"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnTypeClipboard func()
	OnTypeText      func()
	OnStop          func()
	OnOpen          func()
	OnQuit          func()
}

// Icons are the tray icons for the idle and typing states.
type Icons struct {
	Idle   fyne.Resource
	Typing fyne.Resource
}

// Manager handles system tray state. Its methods must be called on the UI goroutine.
type Manager struct {
	app           desktop.App
	icons         Icons
	callbacks     Callbacks
	statusItem    *fyne.MenuItem
	clipboardItem *fyne.MenuItem
	textItem      *fyne.MenuItem
	stopItem      *fyne.MenuItem
	openItem      *fyne.MenuItem
	quitItem      *fyne.MenuItem
	typing        bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: Idle", nil)
	manager.statusItem.Disabled = true
	manager.clipboardItem = fyne.NewMenuItem("Type Clipboard", func() { call(manager.callbacks.OnTypeClipboard) })
	manager.textItem = fyne.NewMenuItem("Type Text", func() { call(manager.callbacks.OnTypeText) })
	manager.stopItem = fyne.NewMenuItem("Stop Typing", func() { call(manager.callbacks.OnStop) })
	manager.stopItem.Disabled = true
	manager.openItem = fyne.NewMenuItem("Open LongAutoTyper", func() { call(manager.callbacks.OnOpen) })
	manager.quitItem = fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) })
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// SetStatus updates the status line and the enabled actions.
func (manager *Manager) SetStatus(typing bool, message string) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", message)
	if manager.typing != typing {
		manager.typing = typing
		manager.clipboardItem.Disabled = typing
		manager.textItem.Disabled = typing
		manager.stopItem.Disabled = !typing
		manager.refreshIcon()
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Idle
	if manager.typing && manager.icons.Typing != nil {
		icon = manager.icons.Typing
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.clipboardItem,
		manager.textItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		manager.openItem,
		manager.quitItem,
	))
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
