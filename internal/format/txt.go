package format

import (
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// Plain text import: every non-blank line becomes an untimed line.
type txtCodec struct{}

func (txtCodec) Parse(raw string) (*lyric.Document, error) {
	doc := &lyric.Document{}
	for _, line := range splitLines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc.Lines = append(doc.Lines, singleWordLine(line, 0, 0))
	}
	return doc, nil
}
