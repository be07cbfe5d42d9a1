package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// Lyricify Syllable: [property]word(start,dur)word(start,dur)
//
// Property numbers: 0-2 background unknown, 3-5 background vocal, 6-8
// explicitly not background. Within each group the offset picks the side:
// +0 unset, +1 left, +2 right (duet).
type lysCodec struct{}

var lysLineRegex = regexp.MustCompile(`^\[(\d+)\](.*)$`)

func (lysCodec) Parse(raw string) (*lyric.Document, error) {
	return parseLysLines(LYS, splitLines(raw), 0)
}

// parseLysLines is shared with the quick export container; lineOffset keeps
// reported line numbers relative to the whole file.
func parseLysLines(id ID, lines []string, lineOffset int) (*lyric.Document, error) {
	doc := &lyric.Document{}
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := lysLineRegex.FindStringSubmatch(line)
		if m == nil {
			if tag, ok := parseTag(line); ok {
				doc.Metadata = append(doc.Metadata, tag)
			}
			continue
		}
		prop, err := strconv.Atoi(m[1])
		if err != nil || prop > 8 {
			return nil, parseErr(id, lineOffset+i+1, "invalid property %q", m[1])
		}
		var l lyric.Line
		// a bare [n] is a line without syllables
		if strings.TrimSpace(m[2]) != "" {
			tw, ok := scanTimedWords(m[2], pairTimingRegex, true)
			if !ok {
				return nil, parseErr(id, lineOffset+i+1, "malformed syllable timing")
			}
			l.Words = toWords(tw)
		}
		if prop >= 3 && prop <= 5 {
			l.Role = lyric.RoleBackground
		}
		l.Duet = prop%3 == 2
		doc.Lines = append(doc.Lines, l)
	}
	return doc, nil
}

func lysProperty(l lyric.Line) int {
	prop := 1
	if l.Duet {
		prop = 2
	}
	if l.IsBackground() {
		prop += 3
	}
	return prop
}

func (lysCodec) Serialize(doc *lyric.Document, opts Options) string {
	return joinLines(lysBody(visibleLines(doc, opts)))
}

func lysBody(lines []lyric.Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		var sb strings.Builder
		fmt.Fprintf(&sb, "[%d]", lysProperty(l))
		for _, w := range l.Words {
			fmt.Fprintf(&sb, "%s(%d,%d)", w.Text, millis(w.StartTime), wordDuration(w))
		}
		out = append(out, sb.String())
	}
	return out
}
