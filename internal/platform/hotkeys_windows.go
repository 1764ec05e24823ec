package platform

import "golang.design/x/hotkey"

// VK_OEM_PERIOD.
const keyPeriod hotkey.Key = 0xBE

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.ModAlt,
	"option":  hotkey.ModAlt,
	"win":     hotkey.ModWin,
	"cmd":     hotkey.ModWin,
}
