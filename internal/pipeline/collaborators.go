package pipeline

import (
	"context"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// FilePicker asks the user for a file to import. A nil File with a nil error
// means the user cancelled.
type FilePicker interface {
	OpenFile(ctx context.Context, extensions []string) (File, error)
}

type File interface {
	Name() string
	ReadText(ctx context.Context) (string, error)
}

type WriteOptions struct {
	SuggestedName string
}

// FileWriter saves exported text. It returns false when the user cancelled
// and an error for real write failures.
type FileWriter interface {
	WriteFile(ctx context.Context, displayName string, extensions []string, content string, opts WriteOptions) (bool, error)
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Store holds the active document and the name it was last saved under.
type Store interface {
	Get(ctx context.Context) (*lyric.Document, error)
	Set(ctx context.Context, doc *lyric.Document) error
	SaveName(ctx context.Context) (string, error)
}

// Notifier shows messages to the user.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}
