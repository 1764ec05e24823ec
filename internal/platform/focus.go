package platform

import (
	"fmt"
	"os"
	"strings"

	"longautotyper/internal/core/session"

	"github.com/go-vgo/robotgo"
)

// FocusProvider reports the process that owns the active window.
type FocusProvider struct {
	activePid   func() int
	processName func(pid int) (string, error)
	windowTitle func() string
}

// NewFocusProvider returns a provider backed by the window system.
func NewFocusProvider() *FocusProvider {
	return &FocusProvider{
		activePid: func() int {
			return int(robotgo.GetPid())
		},
		processName: robotgo.FindName,
		windowTitle: func() string {
			return robotgo.GetTitle()
		},
	}
}

// Frontmost returns the identity of the focused application. It reports
// false when the window system gives no answer.
func (provider *FocusProvider) Frontmost() (session.AppIdentity, bool) {
	pid := provider.activePid()
	if pid <= 0 {
		return session.AppIdentity{}, false
	}

	name, err := provider.processName(pid)
	name = strings.TrimSpace(name)
	if err != nil || name == "" {
		name = strings.TrimSpace(provider.windowTitle())
	}
	if name == "" {
		name = fmt.Sprintf("pid %d", pid)
	}
	return session.AppIdentity{ID: processID(pid), Name: name}, true
}

// SelfID is the identity Frontmost reports for this process.
func SelfID() string {
	return processID(os.Getpid())
}

func processID(pid int) string {
	return fmt.Sprintf("pid:%d", pid)
}
