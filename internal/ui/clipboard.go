package ui

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available
var ErrClipboardUnsupported = errors.New("clipboard not supported on this system")

// Clipboard receives committed arithmetic results
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the desktop clipboard
type SystemClipboard struct{}

// WriteAll places text on the clipboard
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
