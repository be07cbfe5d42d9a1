package format

import (
	"regexp"
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// Lyricify Quick Export bundles a syllable body with an optional LRC
// translation section:
//
//	[Lyricify Quick Export]
//	[version:1.0]
//	[lyrics: format@Lyricify Syllable, language@default]
//	[1]Hel(0,200)lo(200,300)
//
//	[translation: format@LRC, language@zh]
//	[00:00.000]...
type lqeCodec struct{}

var lqeSectionRegex = regexp.MustCompile(`^\[(lyrics|translation|pronunciation):\s*(.*)\]$`)

const (
	lqeLyricsSection      = "[lyrics: format@Lyricify Syllable, language@default]"
	lqeTranslationSection = "[translation: format@LRC, language@default]"
)

type lqeSection struct {
	kind  string
	attrs string
	start int
	lines []string
}

func (lqeCodec) Parse(raw string) (*lyric.Document, error) {
	doc := &lyric.Document{}
	var sections []*lqeSection
	var cur *lqeSection

	for i, line := range splitLines(raw) {
		trimmed := strings.TrimSpace(line)
		if m := lqeSectionRegex.FindStringSubmatch(trimmed); m != nil {
			cur = &lqeSection{kind: m[1], attrs: m[2], start: i + 1}
			sections = append(sections, cur)
			continue
		}
		if cur != nil {
			cur.lines = append(cur.lines, line)
			continue
		}
		if tag, ok := parseTag(trimmed); ok && !isContainerTag(tag.Key) {
			doc.Metadata = append(doc.Metadata, tag)
		}
	}

	var lyrics, translation *lqeSection
	for _, s := range sections {
		switch {
		case s.kind == "lyrics" && lyrics == nil:
			lyrics = s
		case s.kind == "translation" && translation == nil:
			translation = s
		}
	}
	if lyrics == nil {
		return nil, parseErr(LQE, 0, "missing [lyrics] section")
	}

	var body *lyric.Document
	var err error
	if strings.Contains(strings.ToLower(lyrics.attrs), "format@lrc") {
		body, err = lrcCodec{}.Parse(strings.Join(lyrics.lines, "\n"))
	} else {
		body, err = parseLysLines(LQE, lyrics.lines, lyrics.start)
	}
	if err != nil {
		return nil, err
	}
	doc.Lines = body.Lines
	doc.Metadata = append(doc.Metadata, body.Metadata...)

	if translation != nil {
		tr, err := lrcCodec{}.Parse(strings.Join(translation.lines, "\n"))
		if err != nil {
			return nil, &ParseError{Format: LQE, Line: translation.start, Reason: "invalid translation section", Err: err}
		}
		attachTranslations(doc, tr)
	}
	return doc, nil
}

func isContainerTag(key string) bool {
	switch strings.ToLower(key) {
	case "version", "type":
		return true
	}
	return false
}

// attachTranslations copies translated text onto lead lines that start at
// the same millisecond.
func attachTranslations(doc, tr *lyric.Document) {
	byStart := make(map[int64]string, len(tr.Lines))
	for _, l := range tr.Lines {
		key := millis(l.StartTime())
		if _, seen := byStart[key]; !seen {
			byStart[key] = l.Text()
		}
	}
	for i := range doc.Lines {
		if doc.Lines[i].IsBackground() {
			continue
		}
		if text, ok := byStart[millis(doc.Lines[i].StartTime())]; ok {
			doc.Lines[i].Translation = text
		}
	}
}

func (lqeCodec) Serialize(doc *lyric.Document, opts Options) string {
	lines := visibleLines(doc, opts)
	out := []string{lqeLyricsSection}
	out = append(out, lysBody(lines)...)

	var tr lyric.Document
	for _, l := range lines {
		if l.Translation == "" || l.IsBackground() {
			continue
		}
		tr.Lines = append(tr.Lines, singleWordLine(l.Translation, l.StartTime(), l.EndTime()))
	}
	if len(tr.Lines) > 0 {
		out = append(out, "", lqeTranslationSection)
		out = append(out, strings.Split(strings.TrimSuffix(lrcCodec{}.Serialize(&tr, Options{}), "\n"), "\n")...)
	}
	return joinLines(out)
}
