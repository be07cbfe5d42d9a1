package format

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// LyRiC: one [mm:ss.xx] stamp per line, several stamps may share a text.
type lrcCodec struct{}

var lrcStampRegex = regexp.MustCompile(`^\[(\d+:\d+(?:[.:]\d+)?)\]`)

type lrcStamp struct {
	at   time.Duration
	text string
}

func (lrcCodec) Parse(raw string) (*lyric.Document, error) {
	doc := &lyric.Document{}
	var stamps []lrcStamp
	var offset time.Duration

	for i, line := range splitLines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		times, text := leadingStamps(line)
		if len(times) == 0 {
			tag, ok := parseTag(line)
			if !ok {
				continue
			}
			if strings.EqualFold(tag.Key, "offset") {
				ms, err := strconv.ParseInt(strings.TrimPrefix(tag.Value, "+"), 10, 64)
				if err != nil {
					return nil, parseErr(LRC, i+1, "invalid offset %q", tag.Value)
				}
				offset = fromMillis(ms)
				continue
			}
			doc.Metadata = append(doc.Metadata, tag)
			continue
		}

		text = strings.TrimSpace(text)
		for _, at := range times {
			stamps = append(stamps, lrcStamp{at: at, text: text})
		}
	}

	if len(stamps) == 0 {
		if len(doc.Metadata) == 0 && strings.TrimSpace(raw) != "" {
			return nil, parseErr(LRC, 0, "no time stamped lines found")
		}
		return doc, nil
	}

	for i := range stamps {
		stamps[i].at = clampZero(stamps[i].at - offset)
	}
	sort.SliceStable(stamps, func(i, j int) bool {
		return stamps[i].at < stamps[j].at
	})

	for i, s := range stamps {
		// an empty stamp only marks where the previous line ends
		if s.text == "" {
			continue
		}
		end := s.at
		if i+1 < len(stamps) {
			end = stamps[i+1].at
		}
		doc.Lines = append(doc.Lines, singleWordLine(s.text, s.at, end))
	}
	return doc, nil
}

// leadingStamps consumes every stamp at the start of line.
func leadingStamps(line string) ([]time.Duration, string) {
	var times []time.Duration
	for {
		m := lrcStampRegex.FindStringSubmatchIndex(line)
		if m == nil {
			return times, line
		}
		at, ok := parseLRCTime(line[m[2]:m[3]])
		if !ok {
			return times, line
		}
		times = append(times, at)
		line = line[m[1]:]
	}
}

func (lrcCodec) Serialize(doc *lyric.Document, opts Options) string {
	lines := visibleLines(doc, opts)
	out := make([]string, 0, len(lines)+1)
	for i, l := range lines {
		start := l.StartTime()
		out = append(out, "["+formatLRCTime(start)+"]"+strings.TrimSpace(l.Text()))

		end := l.EndTime()
		if end <= start {
			continue
		}
		if i+1 == len(lines) || end < lines[i+1].StartTime() {
			out = append(out, "["+formatLRCTime(end)+"]")
		}
	}
	return joinLines(out)
}
