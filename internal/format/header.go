package format

import (
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// HeaderRule selects the header blocks written before a format's body. The
// blocks are emitted in field order.
type HeaderRule struct {
	// LyricifyLinesTag writes [type:LyricifyLines].
	LyricifyLinesTag bool
	// QuickExportTag writes [Lyricify Quick Export] and [version:1.0].
	QuickExportTag bool
	// LRCHeader writes one [key:value] line per metadata entry.
	LRCHeader bool
	// JSONMetadata writes one YRC credit line per metadata entry.
	JSONMetadata bool
}

var headerRules = []struct {
	id   ID
	rule HeaderRule
}{
	{LYL, HeaderRule{LyricifyLinesTag: true, QuickExportTag: true, LRCHeader: true}},
	{LQE, HeaderRule{QuickExportTag: true, LRCHeader: true}},
	{LYS, HeaderRule{LRCHeader: true}},
	{QRC, HeaderRule{LRCHeader: true}},
	{LRC, HeaderRule{LRCHeader: true}},
	{YRC, HeaderRule{JSONMetadata: true}},
}

// HeaderRuleFor returns the rule for id; formats without a rule get none.
func HeaderRuleFor(id ID) HeaderRule {
	for _, r := range headerRules {
		if r.id == id {
			return r.rule
		}
	}
	return HeaderRule{}
}

// BuildHeader returns the header lines for id built from meta alone.
func BuildHeader(id ID, meta []lyric.MetadataEntry) []string {
	rule := HeaderRuleFor(id)
	var out []string
	if rule.LyricifyLinesTag {
		out = append(out, "[type:LyricifyLines]")
	}
	if rule.QuickExportTag {
		out = append(out, "[Lyricify Quick Export]", "[version:1.0]")
	}
	if rule.LRCHeader {
		for _, m := range meta {
			key := strings.TrimSpace(m.Key)
			if key == "" {
				continue
			}
			out = append(out, "["+key+":"+strings.TrimSpace(m.Value)+"]")
		}
	}
	if rule.JSONMetadata {
		for _, m := range meta {
			if strings.TrimSpace(m.Key) == "" {
				continue
			}
			if line := yrcCreditLine(m); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

// BuildFooter returns the footer lines for id. No current format has one.
func BuildFooter(id ID) []string {
	return nil
}
