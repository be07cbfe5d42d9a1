package format

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// TTML as written by Apple Music style lyric editors. Background vocals are
// nested <span ttm:role="x-bg"> inside the lead <p>, translations are
// <span ttm:role="x-translation">, and agent v2 marks the duet side.
type ttmlCodec struct{}

const (
	ttmlNamespace     = "http://www.w3.org/ns/ttml"
	ttmlMetaNamespace = "http://www.w3.org/ns/ttml#metadata"
	amllNamespace     = "http://www.example.com/ns/amll"
	itunesNamespace   = "http://music.apple.com/lyric-ttml-internal"
)

var (
	ttmlParagraphExpr = xpath.MustCompile(`//*[local-name()='body']//*[local-name()='p']`)
	ttmlMetaExpr      = xpath.MustCompile(`//*[local-name()='head']//*[local-name()='meta']`)
)

func (ttmlCodec) Parse(raw string) (*lyric.Document, error) {
	root, err := xmlquery.Parse(strings.NewReader(strings.TrimPrefix(raw, "\ufeff")))
	if err != nil {
		return nil, &ParseError{Format: TTML, Reason: "invalid XML", Err: err}
	}
	if xmlquery.FindOne(root, "//*[local-name()='tt']") == nil {
		return nil, parseErr(TTML, 0, "missing <tt> root element")
	}

	doc := &lyric.Document{}
	for _, m := range xmlquery.QuerySelectorAll(root, ttmlMetaExpr) {
		key := localAttr(m, "key")
		if key == "" {
			continue
		}
		doc.Metadata = append(doc.Metadata, lyric.MetadataEntry{
			Key:   key,
			Value: localAttr(m, "value"),
		})
	}

	for _, p := range xmlquery.QuerySelectorAll(root, ttmlParagraphExpr) {
		lines, err := parseParagraph(p)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, lines...)
	}
	return doc, nil
}

// localAttr matches on the local name only so prefixed attributes such as
// ttm:agent are found whatever prefix the file binds.
func localAttr(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func parseParagraph(p *xmlquery.Node) ([]lyric.Line, error) {
	agent := localAttr(p, "agent")
	duet := agent != "" && agent != "v1"

	lead, bgs, err := parseSpans(p, duet)
	if err != nil {
		return nil, err
	}
	lead.Duet = duet
	if localAttr(p, "role") == "x-bg" {
		lead.Role = lyric.RoleBackground
	}

	// a paragraph without word spans is line-synced
	if len(lead.Words) == 0 && len(bgs) == 0 {
		text := strings.TrimSpace(p.InnerText())
		if text == "" {
			return nil, nil
		}
		start, end, err := spanTiming(p)
		if err != nil {
			return nil, err
		}
		lead.Words = []lyric.Word{{Text: text, StartTime: start, EndTime: end}}
	}

	var out []lyric.Line
	if len(lead.Words) > 0 {
		out = append(out, lead)
	}
	return append(out, bgs...), nil
}

// parseSpans walks the children of a <p> or an x-bg <span>. Whitespace
// between word spans is folded into the preceding word; a timed span holding
// only whitespace stays a word of its own.
func parseSpans(parent *xmlquery.Node, duet bool) (lyric.Line, []lyric.Line, error) {
	var line lyric.Line
	var bgs []lyric.Line

	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if len(line.Words) > 0 && strings.TrimSpace(c.Data) == "" {
				line.Words[len(line.Words)-1].Text += collapseSpace(c.Data)
			}
		case xmlquery.ElementNode:
			if c.Data != "span" {
				continue
			}
			switch localAttr(c, "role") {
			case "x-bg":
				bg, _, err := parseSpans(c, duet)
				if err != nil {
					return line, nil, err
				}
				if len(bg.Words) == 0 {
					continue
				}
				bg.Role = lyric.RoleBackground
				bg.Duet = duet
				bgs = append(bgs, bg)
			case "x-translation":
				line.Translation = strings.TrimSpace(c.InnerText())
			case "x-roman":
			default:
				start, end, err := spanTiming(c)
				if err != nil {
					return line, nil, err
				}
				line.Words = append(line.Words, lyric.Word{
					Text:      c.InnerText(),
					StartTime: start,
					EndTime:   end,
				})
			}
		}
	}
	return line, bgs, nil
}

// whitespace between spans is usually indentation; keep one space per run
func collapseSpace(s string) string {
	if strings.ContainsAny(s, "\n\t") {
		return " "
	}
	return s
}

func spanTiming(n *xmlquery.Node) (startAt, endAt time.Duration, err error) {
	begin, end := localAttr(n, "begin"), localAttr(n, "end")
	if begin == "" || end == "" {
		return 0, 0, parseErr(TTML, 0, "<%s> without begin/end timing", n.Data)
	}
	if startAt, err = parseTTMLTime(begin); err != nil {
		return 0, 0, &ParseError{Format: TTML, Reason: fmt.Sprintf("invalid begin %q", begin), Err: err}
	}
	if endAt, err = parseTTMLTime(end); err != nil {
		return 0, 0, &ParseError{Format: TTML, Reason: fmt.Sprintf("invalid end %q", end), Err: err}
	}
	return startAt, endAt, nil
}

func (ttmlCodec) Serialize(doc *lyric.Document, opts Options) string {
	lines := visibleLines(doc, opts)

	var sb strings.Builder
	sb.WriteString(`<tt xmlns="` + ttmlNamespace + `" xmlns:ttm="` + ttmlMetaNamespace +
		`" xmlns:amll="` + amllNamespace + `" xmlns:itunes="` + itunesNamespace + `">`)

	sb.WriteString(`<head><metadata>`)
	sb.WriteString(`<ttm:agent type="person" xml:id="v1"/>`)
	if hasDuet(lines) {
		sb.WriteString(`<ttm:agent type="other" xml:id="v2"/>`)
	}
	if opts.Title != "" {
		sb.WriteString(`<ttm:title>` + xmlEscape(opts.Title) + `</ttm:title>`)
	}
	if doc != nil {
		for _, m := range doc.Metadata {
			sb.WriteString(`<amll:meta key="` + xmlEscape(m.Key) + `" value="` + xmlEscape(m.Value) + `"/>`)
		}
	}
	sb.WriteString(`</metadata></head>`)

	var end time.Duration
	for _, l := range lines {
		if e := l.EndTime(); e > end {
			end = e
		}
	}
	sb.WriteString(`<body dur="` + formatTTMLTime(end) + `">`)
	if len(lines) > 0 {
		sb.WriteString(`<div begin="` + formatTTMLTime(lines[0].StartTime()) + `" end="` + formatTTMLTime(end) + `">`)
		key := 0
		for i := 0; i < len(lines); {
			l := lines[i]
			i++
			var bgs []lyric.Line
			for i < len(lines) && lines[i].IsBackground() && !l.IsBackground() {
				bgs = append(bgs, lines[i])
				i++
			}
			key++
			writeParagraph(&sb, l, bgs, key)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</body></tt>`)
	sb.WriteString("\n")
	return sb.String()
}

func hasDuet(lines []lyric.Line) bool {
	for _, l := range lines {
		if l.Duet {
			return true
		}
	}
	return false
}

func writeParagraph(sb *strings.Builder, l lyric.Line, bgs []lyric.Line, key int) {
	start, end := l.StartTime(), l.EndTime()
	for _, bg := range bgs {
		if bg.StartTime() < start {
			start = bg.StartTime()
		}
		if bg.EndTime() > end {
			end = bg.EndTime()
		}
	}
	agent := "v1"
	if l.Duet {
		agent = "v2"
	}

	sb.WriteString(`<p begin="` + formatTTMLTime(start) + `" end="` + formatTTMLTime(end) +
		`" ttm:agent="` + agent + `" itunes:key="L` + fmt.Sprint(key) + `"`)
	if l.IsBackground() {
		sb.WriteString(` ttm:role="x-bg"`)
	}
	sb.WriteString(`>`)
	writeWords(sb, l)
	for _, bg := range bgs {
		sb.WriteString(`<span ttm:role="x-bg" begin="` + formatTTMLTime(bg.StartTime()) +
			`" end="` + formatTTMLTime(bg.EndTime()) + `">`)
		writeWords(sb, bg)
		sb.WriteString(`</span>`)
	}
	sb.WriteString(`</p>`)
}

func writeWords(sb *strings.Builder, l lyric.Line) {
	for _, w := range l.Words {
		core := strings.TrimRightFunc(w.Text, unicode.IsSpace)
		// a whitespace-only syllable keeps its own timing
		if core == "" && w.Text != "" {
			core = w.Text
		}
		if core != "" {
			sb.WriteString(`<span begin="` + formatTTMLTime(w.StartTime) + `" end="` +
				formatTTMLTime(w.EndTime) + `">` + xmlEscape(core) + `</span>`)
		}
		if trail := w.Text[len(core):]; trail != "" {
			sb.WriteString(xmlEscape(trail))
		}
	}
	if l.Translation != "" {
		sb.WriteString(`<span ttm:role="x-translation" xml:lang="und">` + xmlEscape(l.Translation) + `</span>`)
	}
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
