package format

import (
	"strings"
	"unicode"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// formats whose syllable syntax cannot hold a bare space token or an
// unbalanced background parenthesis
var quirkFormats = map[ID]bool{
	LYS: true,
	QRC: true,
	LQE: true,
}

// HasQuirks reports whether ApplyQuirks changes anything for id.
func HasQuirks(id ID) bool {
	return quirkFormats[id]
}

// ApplyQuirks returns a fixed-up copy of doc for serialization as id. doc is
// never modified.
func ApplyQuirks(id ID, doc *lyric.Document) *lyric.Document {
	out := doc.Clone()
	if !HasQuirks(id) {
		return out
	}
	for i, l := range out.Lines {
		l = MergeSpaceSyllables(l)
		if l.IsBackground() {
			l = WrapBackground(l)
		}
		out.Lines[i] = l
	}
	return out
}

// MergeSpaceSyllables folds every syllable that is exactly one space into the
// syllable before it. A leading space syllable has nothing to merge into and
// is kept.
func MergeSpaceSyllables(l lyric.Line) lyric.Line {
	out := l.Clone()
	words := make([]lyric.Word, 0, len(l.Words))
	for _, w := range l.Words {
		if w.Text == " " && len(words) > 0 {
			prev := &words[len(words)-1]
			prev.Text += w.Text
			if w.EndTime > prev.EndTime {
				prev.EndTime = w.EndTime
			}
			continue
		}
		words = append(words, w)
	}
	out.Words = words
	return out
}

// WrapBackground strips every leading "(" or "（" from the first syllable and
// every trailing ")" or "）" from the last one, then wraps the line in exactly
// one "(" ... ")" pair. Whitespace leading the first syllable or trailing the
// last one stays outside the parentheses.
func WrapBackground(l lyric.Line) lyric.Line {
	out := l.Clone()
	n := len(out.Words)
	if n == 0 {
		return out
	}

	first := &out.Words[0]
	body := strings.TrimLeftFunc(first.Text, unicode.IsSpace)
	lead := first.Text[:len(first.Text)-len(body)]
	first.Text = lead + "(" + trimLeadingOpen(body)

	last := &out.Words[n-1]
	core := strings.TrimRightFunc(last.Text, unicode.IsSpace)
	trail := last.Text[len(core):]
	last.Text = trimTrailingClose(core) + ")" + trail
	return out
}

func trimLeadingOpen(s string) string {
	for {
		switch {
		case strings.HasPrefix(s, "("):
			s = s[len("("):]
		case strings.HasPrefix(s, "（"):
			s = s[len("（"):]
		default:
			return s
		}
	}
}

func trimTrailingClose(s string) string {
	for {
		switch {
		case strings.HasSuffix(s, ")"):
			s = s[:len(s)-len(")")]
		case strings.HasSuffix(s, "）"):
			s = s[:len(s)-len("）")]
		default:
			return s
		}
	}
}
