package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// Advanced SubStation Alpha export. Each line becomes a Dialogue event whose
// words carry {\k} karaoke durations; gaps between words are empty {\k} runs.
type assCodec struct{}

const (
	assDefaultTitle = "Lyrico Exported Lyrics"
	assFontName     = "Arial"
	assFontSize     = 20
)

func (assCodec) Serialize(doc *lyric.Document, opts Options) string {
	title := opts.Title
	if title == "" {
		title = assDefaultTitle
	}

	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	for _, style := range []struct {
		name string
		size int
	}{
		{"Default", assFontSize},
		{"Background", assFontSize * 3 / 4},
		{"Translation", assFontSize * 3 / 4},
	} {
		sb.WriteString(fmt.Sprintf("Style: %s,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n",
			style.name, assFontName, style.size))
	}
	sb.WriteString("\n")

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, l := range visibleLines(doc, opts) {
		style := "Default"
		if l.IsBackground() {
			style = "Background"
		}
		name := "v1"
		if l.Duet {
			name = "v2"
		}
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,%s,%s,0,0,0,,%s\n",
			formatASSTime(l.StartTime()),
			formatASSTime(l.EndTime()),
			style,
			name,
			karaokeText(l)))

		if l.Translation != "" {
			sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Translation,%s,0,0,0,,%s\n",
				formatASSTime(l.StartTime()),
				formatASSTime(l.EndTime()),
				name,
				escapeASSText(l.Translation)))
		}
	}

	return sb.String()
}

func karaokeText(l lyric.Line) string {
	var sb strings.Builder
	cursor := l.StartTime()
	for _, w := range l.Words {
		if gap := w.StartTime - cursor; gap > 0 {
			sb.WriteString(fmt.Sprintf("{\\k%d}", centiseconds(gap)))
		}
		dur := w.EndTime - w.StartTime
		if dur < 0 {
			dur = 0
		}
		sb.WriteString(fmt.Sprintf("{\\k%d}%s", centiseconds(dur), escapeASSText(w.Text)))
		if w.EndTime > cursor {
			cursor = w.EndTime
		}
	}
	return sb.String()
}

func centiseconds(d time.Duration) int64 {
	return (d.Milliseconds() + 5) / 10
}

func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\n", "\\N")
	return text
}
