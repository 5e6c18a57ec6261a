// Package clipboard places generated passwords on the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the system clipboard cannot be written.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer receives plain text for pasting elsewhere.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type System struct{}

// WriteAll replaces the clipboard contents with text.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Discard drops everything written to it. Used when copying is disabled.
type Discard struct{}

func (Discard) WriteAll(string) error { return nil }
