package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// SubRip: one cue per lyric line, multi-line cue text is joined with spaces.
type srtCodec struct{}

var srtTimestampRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})`,
)

type cue struct {
	line  lyric.Line
	text  []string
	timed bool
}

func (srtCodec) Parse(raw string) (*lyric.Document, error) {
	doc := &lyric.Document{}
	var current *cue

	flush := func() {
		if current != nil && current.timed && len(current.text) > 0 {
			current.line.Words[0].Text = strings.Join(current.text, " ")
			doc.Lines = append(doc.Lines, current.line)
		}
		current = nil
	}

	for i, line := range splitLines(raw) {
		lineNum := i + 1
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				current = &cue{}
				continue
			}
			if !srtTimestampRegex.MatchString(line) {
				return nil, parseErr(SRT, lineNum, "expected cue index or timing, got %q", line)
			}
			current = &cue{}
		}

		if !current.timed {
			matches := srtTimestampRegex.FindStringSubmatch(line)
			if len(matches) != 9 {
				return nil, parseErr(SRT, lineNum, "expected cue timing, got %q", line)
			}
			start, err := parseClock(matches[1], matches[2], matches[3], matches[4])
			if err != nil {
				return nil, &ParseError{Format: SRT, Line: lineNum, Reason: "invalid start timestamp", Err: err}
			}
			end, err := parseClock(matches[5], matches[6], matches[7], matches[8])
			if err != nil {
				return nil, &ParseError{Format: SRT, Line: lineNum, Reason: "invalid end timestamp", Err: err}
			}
			current.line = singleWordLine("", start, end)
			current.timed = true
			continue
		}

		current.text = append(current.text, strings.TrimSpace(line))
	}
	flush()

	return doc, nil
}

func (srtCodec) Serialize(doc *lyric.Document, opts Options) string {
	var sb strings.Builder
	for i, l := range visibleLines(doc, opts) {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(l.StartTime()),
			formatSRTTime(l.EndTime())))

		sb.WriteString(strings.TrimSpace(l.Text()))
		sb.WriteString("\n\n")
	}
	return sb.String()
}
