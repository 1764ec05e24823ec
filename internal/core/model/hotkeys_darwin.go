package model

const (
	DefaultStartHotkey = "f12"
	DefaultStopHotkey  = "ctrl+option+cmd+period"
)
