package format

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// splitLines strips a BOM and normalizes line endings.
func splitLines(raw string) []string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// line-synced formats hold the whole line in a single word
func singleWordLine(text string, start, end time.Duration) lyric.Line {
	return lyric.Line{
		Words: []lyric.Word{{Text: text, StartTime: start, EndTime: end}},
	}
}

// metadata tag such as [ar:Artist]; time stamps never match because the key
// must start with a letter
var tagRegex = regexp.MustCompile(`^\[([A-Za-z][\w-]*):(.*)\]$`)

func parseTag(line string) (lyric.MetadataEntry, bool) {
	m := tagRegex.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return lyric.MetadataEntry{}, false
	}
	return lyric.MetadataEntry{
		Key:   strings.TrimSpace(m[1]),
		Value: strings.TrimSpace(m[2]),
	}, true
}

// timedWord is a syllable with its raw millisecond timing as written in the
// source.
type timedWord struct {
	text  string
	start int64
	dur   int64
}

// scanTimedWords splits a syllable body on timing markers matched by re, whose
// first two groups are start and duration in milliseconds. When textFirst is
// set the text of a syllable precedes its marker (qrc, lys), otherwise it
// follows it (yrc).
func scanTimedWords(body string, re *regexp.Regexp, textFirst bool) ([]timedWord, bool) {
	locs := re.FindAllStringSubmatchIndex(body, -1)
	if len(locs) == 0 {
		return nil, false
	}
	words := make([]timedWord, 0, len(locs))
	prevEnd := 0
	for i, loc := range locs {
		start, err1 := strconv.ParseInt(body[loc[2]:loc[3]], 10, 64)
		dur, err2 := strconv.ParseInt(body[loc[4]:loc[5]], 10, 64)
		if err1 != nil || err2 != nil {
			return nil, false
		}
		var text string
		if textFirst {
			text = body[prevEnd:loc[0]]
		} else {
			next := len(body)
			if i+1 < len(locs) {
				next = locs[i+1][0]
			}
			text = body[loc[1]:next]
		}
		words = append(words, timedWord{text: text, start: start, dur: dur})
		prevEnd = loc[1]
	}
	if textFirst && strings.TrimSpace(body[prevEnd:]) != "" {
		// trailing text without a marker
		return nil, false
	}
	if !textFirst && strings.TrimSpace(body[:locs[0][0]]) != "" {
		return nil, false
	}
	return words, true
}

func toWords(tw []timedWord) []lyric.Word {
	words := make([]lyric.Word, len(tw))
	for i, w := range tw {
		words[i] = lyric.Word{
			Text:      w.text,
			StartTime: fromMillis(w.start),
			EndTime:   fromMillis(w.start + w.dur),
		}
	}
	return words
}

// visibleLines applies Options.OmitBackground.
func visibleLines(doc *lyric.Document, opts Options) []lyric.Line {
	if doc == nil {
		return nil
	}
	if !opts.OmitBackground {
		return doc.Lines
	}
	out := make([]lyric.Line, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		if !l.IsBackground() {
			out = append(out, l)
		}
	}
	return out
}

func lineDuration(l lyric.Line) int64 {
	d := millis(l.EndTime()) - millis(l.StartTime())
	if d < 0 {
		return 0
	}
	return d
}

func wordDuration(w lyric.Word) int64 {
	d := millis(w.EndTime) - millis(w.StartTime)
	if d < 0 {
		return 0
	}
	return d
}
