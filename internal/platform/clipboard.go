package platform

import (
	"log/slog"

	"github.com/atotto/clipboard"
)

// Clipboard reads plain text from the system clipboard.
type Clipboard struct {
	read   func() (string, error)
	logger *slog.Logger
}

// NewClipboard returns a clipboard reader.
func NewClipboard(logger *slog.Logger) *Clipboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Clipboard{read: clipboard.ReadAll, logger: logger}
}

// ReadText returns the clipboard text, or false when it holds none.
func (board *Clipboard) ReadText() (string, bool) {
	text, err := board.read()
	if err != nil {
		board.logger.Debug("clipboard read failed", "error", err)
		return "", false
	}
	if text == "" {
		return "", false
	}
	return text, true
}
