package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"longautotyper/internal/core/model"
	"longautotyper/internal/core/session"
	"longautotyper/internal/core/typing"
	"longautotyper/internal/logging"
	"longautotyper/internal/platform"
	"longautotyper/internal/storage"
	"longautotyper/internal/ui/mainwindow"
	"longautotyper/internal/ui/tray"
	"longautotyper/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName         = "LongAutoTyper"
	shutdownTimeout = 2 * time.Second
)

func main() {
	logger := logging.New(logging.DefaultConfig(), os.Stderr)
	slog.SetDefault(logger.Logger)

	configPath, err := storage.ResolveConfigPath(appName)
	if err != nil {
		logger.Error("settings location unavailable", "error", err)
		os.Exit(1)
	}
	store := storage.NewStore(configPath)
	settings, err := store.Load()
	if err != nil {
		logger.Warn("settings not loaded, using defaults", "path", configPath, "error", err)
	}
	applyLogLevel(logger, settings.LogLevel)

	instance, err := platform.AcquireInstance(appName, logger.WithComponent("instance"))
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is already running")
			return
		}
		logger.Error("single instance", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = instance.Release()
	}()

	fyneApp := app.NewWithID("com.longautotyper.app")
	idleIcon := resources.MustIcon(resources.IconIdle)
	fyneApp.SetIcon(idleIcon)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	engine := typing.New(platform.NewKeyEmitter(), typing.Config{})
	engine.SetLogger(logger.WithComponent("typing"))

	var typist *session.Session
	cancelKey := platform.NewCancelKeyMonitor(func() {
		typist.EmergencyStop("Typing stopped (Delete).")
	}, logger.WithComponent("cancel"))

	typist = session.New(session.Deps{
		Runner:    engine,
		Clipboard: platform.NewClipboard(logger.WithComponent("clipboard")),
		Frontmost: platform.NewFocusProvider(),
		Cancel:    cancelKey,
		Store:     store,
		SelfID:    platform.SelfID(),
		Dispatch:  fyne.Do,
		Logger:    logger.WithComponent("session"),
	}, settings)

	hotkeys := platform.NewHotkeyManager(platform.HotkeyCallbacks{
		OnStart: func() {
			_ = typist.HandleStartHotkey()
		},
		OnStop:    typist.Stop,
		OnWarning: typist.Warn,
	}, logger.WithComponent("hotkeys"))

	registered := settings.Clamped()
	registerHotkeys := func(current model.Settings) {
		if err := hotkeys.Register(current.StartHotkey, current.StopHotkey); err != nil {
			logger.Warn("hotkeys not fully registered", "error", err)
		}
		registered = current
	}
	settingsChanged := func(updated model.Settings) {
		if updated.StartHotkey != registered.StartHotkey || updated.StopHotkey != registered.StopHotkey {
			registerHotkeys(updated)
		}
		applyLogLevel(logger, updated.LogLevel)
	}

	mainWindow := mainwindow.New(fyneApp, typist.Settings(), mainwindow.Callbacks{
		OnSave: func(updated model.Settings) error {
			err := typist.UpdateSettings(updated)
			settingsChanged(typist.Settings())
			return err
		},
		OnTypeClipboard: func() {
			_ = typist.TypeClipboard()
		},
		OnTypeText: func() {
			_ = typist.TypeManual()
		},
		OnStop: typist.Stop,
	})

	trayManager := tray.New(desktopApp, tray.Icons{
		Idle:   idleIcon,
		Typing: resources.MustIcon(resources.IconTyping),
	}, tray.Callbacks{
		OnTypeClipboard: func() {
			_ = typist.TypeClipboard()
		},
		OnTypeText: func() {
			_ = typist.TypeManual()
		},
		OnStop: typist.Stop,
		OnOpen: mainWindow.Show,
		OnQuit: fyneApp.Quit,
	})

	typist.OnStatus(func(status session.Status) {
		trayManager.SetStatus(status.Typing, status.Message)
		mainWindow.SetStatus(status.Typing, status.Message)
	})
	typist.OnSettings(func(updated model.Settings) {
		mainWindow.UpdateSettings(updated)
		settingsChanged(updated)
	})

	watcher := storage.NewWatcher(store, logger.WithComponent("settings"))
	watcher.OnChange(typist.ApplySettings)
	if err := watcher.Start(); err != nil {
		logger.Warn("settings hot reload unavailable", "error", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	fyneApp.Lifecycle().SetOnStarted(func() {
		registerHotkeys(typist.Settings())
	})
	fyneApp.Lifecycle().SetOnStopped(func() {
		hotkeys.Unregister()
		engine.Stop()
		cancelKey.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := engine.Wait(ctx); err != nil {
			logger.Warn("typing run did not exit before shutdown", "error", err)
		}
	})

	mainWindow.Show()
	fyneApp.Run()
}

func applyLogLevel(logger *logging.Logger, configured string) {
	level, err := logging.ResolveLevel(configured)
	if err != nil {
		logger.Warn("log level ignored", "error", err)
		return
	}
	if logger.Level() != level {
		logger.Info("log level", "level", logging.LevelString(level))
	}
	_ = logger.SetLevel(logging.LevelString(level))
}
