package format

import (
	"regexp"
	"strings"
	"time"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// ESLyRiC: [start]word[start]word[end]. A stamp followed directly by another
// stamp encodes a gap between two words.
type eslrcCodec struct{}

var eslrcStampRegex = regexp.MustCompile(`\[(\d+:\d+(?:[.:]\d+)?)\]`)

func (eslrcCodec) Parse(raw string) (*lyric.Document, error) {
	doc := &lyric.Document{}
	// lines whose final word had no closing stamp
	var open []int

	for i, line := range splitLines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		locs := eslrcStampRegex.FindAllStringSubmatchIndex(line, -1)
		if len(locs) == 0 || locs[0][0] != 0 {
			if tag, ok := parseTag(line); ok {
				doc.Metadata = append(doc.Metadata, tag)
			}
			continue
		}

		stamps := make([]time.Duration, len(locs))
		for j, loc := range locs {
			at, ok := parseLRCTime(line[loc[2]:loc[3]])
			if !ok {
				return nil, parseErr(ESLRC, i+1, "invalid time stamp %q", line[loc[0]:loc[1]])
			}
			stamps[j] = at
		}

		var l lyric.Line
		for j, loc := range locs {
			next := len(line)
			if j+1 < len(locs) {
				next = locs[j+1][0]
			}
			text := line[loc[1]:next]
			if text == "" {
				continue
			}
			end := stamps[j]
			if j+1 < len(locs) {
				end = stamps[j+1]
			}
			l.Words = append(l.Words, lyric.Word{Text: text, StartTime: stamps[j], EndTime: end})
		}
		if len(l.Words) == 0 {
			continue
		}
		if strings.TrimSpace(line[locs[len(locs)-1][1]:]) != "" {
			open = append(open, len(doc.Lines))
		}
		doc.Lines = append(doc.Lines, l)
	}

	// a line that is plain LRC ends where the next one starts
	for _, idx := range open {
		if idx+1 < len(doc.Lines) {
			words := doc.Lines[idx].Words
			words[len(words)-1].EndTime = doc.Lines[idx+1].StartTime()
		}
	}
	return doc, nil
}

func (eslrcCodec) Serialize(doc *lyric.Document, opts Options) string {
	lines := visibleLines(doc, opts)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if len(l.Words) == 0 {
			continue
		}
		var sb strings.Builder
		for i, w := range l.Words {
			sb.WriteString("[" + formatLRCTime(w.StartTime) + "]")
			sb.WriteString(w.Text)
			if i+1 < len(l.Words) {
				next := l.Words[i+1].StartTime
				if w.EndTime < next {
					sb.WriteString("[" + formatLRCTime(w.EndTime) + "]")
				}
				continue
			}
			end := w.EndTime
			if end < w.StartTime {
				end = w.StartTime
			}
			sb.WriteString("[" + formatLRCTime(end) + "]")
		}
		out = append(out, sb.String())
	}
	return joinLines(out)
}
