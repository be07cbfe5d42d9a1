package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// SystemClipboard writes to the desktop clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API).
type SystemClipboard struct {
	unsupported bool
	writeAll    func(string) error
}

func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{
		unsupported: clipboard.Unsupported,
		writeAll:    clipboard.WriteAll,
	}
}

func (c *SystemClipboard) WriteText(ctx context.Context, text string) error {
	if c.unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrClipboardUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.writeAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}
