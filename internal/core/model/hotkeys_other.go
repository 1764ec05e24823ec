//go:build !darwin

package model

const (
	DefaultStartHotkey = "f12"
	DefaultStopHotkey  = "ctrl+alt+period"
)
