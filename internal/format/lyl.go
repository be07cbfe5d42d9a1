package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// Lyricify Lines: [start,end]text, times in milliseconds.
type lylCodec struct{}

func (lylCodec) Parse(raw string) (*lyric.Document, error) {
	doc := &lyric.Document{}
	for i, line := range splitLines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := bracketTimingRegex.FindStringSubmatch(line)
		if m == nil {
			if tag, ok := parseTag(line); ok && !isContainerTag(tag.Key) {
				doc.Metadata = append(doc.Metadata, tag)
			}
			continue
		}
		start, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, &ParseError{Format: LYL, Line: i + 1, Reason: "invalid start", Err: err}
		}
		end, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return nil, &ParseError{Format: LYL, Line: i + 1, Reason: "invalid end", Err: err}
		}
		if end < start {
			return nil, parseErr(LYL, i+1, "line ends before it starts")
		}
		doc.Lines = append(doc.Lines, singleWordLine(strings.TrimSpace(m[3]), fromMillis(start), fromMillis(end)))
	}
	return doc, nil
}

func (lylCodec) Serialize(doc *lyric.Document, opts Options) string {
	lines := visibleLines(doc, opts)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		end := l.EndTime()
		if end < l.StartTime() {
			end = l.StartTime()
		}
		out = append(out, fmt.Sprintf("[%d,%d]%s", millis(l.StartTime()), millis(end), strings.TrimSpace(l.Text())))
	}
	return joinLines(out)
}
