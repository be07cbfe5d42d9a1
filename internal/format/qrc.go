package format

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// QRC: [lineStart,lineDur]word(start,dur)word(start,dur)
type qrcCodec struct{}

var (
	bracketTimingRegex = regexp.MustCompile(`^\[(\d+),(\d+)\](.*)$`)
	pairTimingRegex    = regexp.MustCompile(`\((\d+),(\d+)\)`)
	qrcContentRegex    = regexp.MustCompile(`(?s)LyricContent="([^"]*)"`)
)

func (qrcCodec) Parse(raw string) (*lyric.Document, error) {
	// QRC downloads often come wrapped in an XML envelope
	if m := qrcContentRegex.FindStringSubmatch(raw); m != nil {
		raw = html.UnescapeString(m[1])
	}

	doc := &lyric.Document{}
	for i, line := range splitLines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := bracketTimingRegex.FindStringSubmatch(line)
		if m == nil {
			if tag, ok := parseTag(line); ok {
				doc.Metadata = append(doc.Metadata, tag)
			}
			continue
		}
		l, err := parseBracketLine(m, pairTimingRegex, true)
		if err != nil {
			return nil, &ParseError{Format: QRC, Line: i + 1, Reason: "invalid line", Err: err}
		}
		doc.Lines = append(doc.Lines, l)
	}
	return doc, nil
}

// parseBracketLine builds a line from a [start,dur]body match. A body without
// any syllable markers becomes a single word spanning the line.
func parseBracketLine(m []string, wordRe *regexp.Regexp, textFirst bool) (lyric.Line, error) {
	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return lyric.Line{}, err
	}
	dur, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return lyric.Line{}, err
	}
	body := m[3]

	if !wordRe.MatchString(body) {
		return singleWordLine(body, fromMillis(start), fromMillis(start+dur)), nil
	}
	tw, ok := scanTimedWords(body, wordRe, textFirst)
	if !ok {
		return lyric.Line{}, fmt.Errorf("malformed syllable timing in %q", body)
	}
	return lyric.Line{Words: toWords(tw)}, nil
}

func (qrcCodec) Serialize(doc *lyric.Document, opts Options) string {
	lines := visibleLines(doc, opts)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		var sb strings.Builder
		fmt.Fprintf(&sb, "[%d,%d]", millis(l.StartTime()), lineDuration(l))
		for _, w := range l.Words {
			fmt.Fprintf(&sb, "%s(%d,%d)", w.Text, millis(w.StartTime), wordDuration(w))
		}
		out = append(out, sb.String())
	}
	return joinLines(out)
}
