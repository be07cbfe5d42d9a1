package host

import (
	"fmt"
	"io"
	"os"

	"github.com/mgpai22/lyrico/internal/logging"
)

// ConsoleNotifier prints user-facing messages: information to Out, errors
// to Err.
type ConsoleNotifier struct {
	Out    io.Writer
	Err    io.Writer
	Logger *logging.Logger
}

func NewConsoleNotifier(logger *logging.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{Out: os.Stdout, Err: os.Stderr, Logger: logger}
}

func (n *ConsoleNotifier) Info(msg string) {
	fmt.Fprintln(n.Out, msg)
	if n.Logger != nil {
		n.Logger.Debugw("Notified user", "level", "info", "message", msg)
	}
}

func (n *ConsoleNotifier) Error(msg string) {
	fmt.Fprintf(n.Err, "Error: %s\n", msg)
	if n.Logger != nil {
		n.Logger.Debugw("Notified user", "level", "error", "message", msg)
	}
}
