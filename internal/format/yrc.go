package format

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// YRC: [lineStart,lineDur](start,dur,0)word(start,dur,0)word. Credits are
// JSON lines such as {"t":0,"c":[{"tx":"Lyrics: "},{"tx":"Someone"}]}.
type yrcCodec struct{}

var yrcWordRegex = regexp.MustCompile(`\((\d+),(\d+),-?\d+\)`)

type yrcCreditPart struct {
	Text string `json:"tx"`
}

type yrcCredit struct {
	Time  int64           `json:"t"`
	Parts []yrcCreditPart `json:"c"`
}

func (yrcCodec) Parse(raw string) (*lyric.Document, error) {
	doc := &lyric.Document{}
	for i, line := range splitLines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			entry, err := parseYRCCredit(line)
			if err != nil {
				return nil, &ParseError{Format: YRC, Line: i + 1, Reason: "invalid credit line", Err: err}
			}
			doc.Metadata = append(doc.Metadata, entry)
			continue
		}
		m := bracketTimingRegex.FindStringSubmatch(line)
		if m == nil {
			if tag, ok := parseTag(line); ok {
				doc.Metadata = append(doc.Metadata, tag)
			}
			continue
		}
		l, err := parseBracketLine(m, yrcWordRegex, false)
		if err != nil {
			return nil, &ParseError{Format: YRC, Line: i + 1, Reason: "invalid line", Err: err}
		}
		doc.Lines = append(doc.Lines, l)
	}
	return doc, nil
}

func parseYRCCredit(line string) (lyric.MetadataEntry, error) {
	var c yrcCredit
	if err := json.Unmarshal([]byte(line), &c); err != nil {
		return lyric.MetadataEntry{}, err
	}
	var sb strings.Builder
	for _, p := range c.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if key, value, ok := cutCredit(text); ok {
		return lyric.MetadataEntry{Key: key, Value: value}, nil
	}
	return lyric.MetadataEntry{Key: strings.TrimSpace(text)}, nil
}

// credits use either an ASCII or a full-width colon
func cutCredit(s string) (string, string, bool) {
	idx := strings.IndexAny(s, ":：")
	if idx < 0 {
		return "", "", false
	}
	sep := ":"
	if strings.HasPrefix(s[idx:], "：") {
		sep = "："
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):]), true
}

// yrcCreditLine encodes one metadata entry as a credit line.
func yrcCreditLine(m lyric.MetadataEntry) string {
	c := yrcCredit{Parts: []yrcCreditPart{
		{Text: strings.TrimSpace(m.Key) + ": "},
		{Text: strings.TrimSpace(m.Value)},
	}}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return string(data)
}

func (yrcCodec) Serialize(doc *lyric.Document, opts Options) string {
	lines := visibleLines(doc, opts)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		var sb strings.Builder
		fmt.Fprintf(&sb, "[%d,%d]", millis(l.StartTime()), lineDuration(l))
		for _, w := range l.Words {
			fmt.Fprintf(&sb, "(%d,%d,0)%s", millis(w.StartTime), wordDuration(w), w.Text)
		}
		out = append(out, sb.String())
	}
	return joinLines(out)
}
