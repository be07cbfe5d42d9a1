package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// WebVTT: like SubRip with an optional hour field and NOTE/STYLE blocks.
type vttCodec struct{}

var (
	vttTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttShortTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttTagRegex = regexp.MustCompile(`<[^>]*>`)
)

func (vttCodec) Parse(raw string) (*lyric.Document, error) {
	doc := &lyric.Document{}
	lines := splitLines(raw)
	if len(lines) == 0 || !strings.HasPrefix(strings.TrimSpace(lines[0]), "WEBVTT") {
		return nil, parseErr(VTT, 1, "missing WEBVTT header")
	}

	var current *cue
	flush := func() {
		if current != nil && len(current.text) > 0 {
			current.line.Words[0].Text = strings.Join(current.text, " ")
			doc.Lines = append(doc.Lines, current.line)
		}
		current = nil
	}

	skipBlock := false
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		lineNum := i + 1

		if trimmed == "" {
			skipBlock = false
			flush()
			continue
		}
		if skipBlock {
			continue
		}
		if current == nil && (strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE") || strings.HasPrefix(trimmed, "REGION")) {
			skipBlock = true
			continue
		}

		if start, end, ok, err := parseVTTTiming(line); ok {
			if err != nil {
				return nil, &ParseError{Format: VTT, Line: lineNum, Reason: "invalid cue timing", Err: err}
			}
			flush()
			l := singleWordLine("", start, end)
			current = &cue{line: l, timed: true}
			continue
		}

		// cue identifiers precede the timing line
		if current == nil {
			continue
		}
		text := strings.TrimSpace(vttTagRegex.ReplaceAllString(line, ""))
		if text != "" {
			current.text = append(current.text, text)
		}
	}
	flush()

	return doc, nil
}

func parseVTTTiming(line string) (start, end time.Duration, ok bool, err error) {
	if m := vttTimestampRegex.FindStringSubmatch(line); len(m) == 9 {
		if start, err = parseClock(m[1], m[2], m[3], m[4]); err != nil {
			return 0, 0, true, err
		}
		end, err = parseClock(m[5], m[6], m[7], m[8])
		return start, end, true, err
	}
	if m := vttShortTimestampRegex.FindStringSubmatch(line); len(m) == 7 {
		if start, err = parseClock("", m[1], m[2], m[3]); err != nil {
			return 0, 0, true, err
		}
		end, err = parseClock("", m[4], m[5], m[6])
		return start, end, true, err
	}
	return 0, 0, false, nil
}

func (vttCodec) Serialize(doc *lyric.Document, opts Options) string {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n\n")

	for i, l := range visibleLines(doc, opts) {
		// optional cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatVTTTime(l.StartTime()),
			formatVTTTime(l.EndTime())))

		sb.WriteString(strings.TrimSpace(l.Text()))
		sb.WriteString("\n\n")
	}
	return sb.String()
}
