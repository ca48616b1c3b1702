// Package desktop adapts the local clipboard and browser for reminders.
package desktop

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Clipboard writes to the system clipboard.
type Clipboard struct{}

// WriteText copies text to the clipboard.
func (Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

// Browser opens links in the user's default browser.
type Browser struct{}

// Open launches the browser at link.
func (Browser) Open(ctx context.Context, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := browser.OpenURL(link); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
