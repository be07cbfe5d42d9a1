package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

type DocumentOptions struct {
	Concurrency int

	// Background vocals are usually ad-libs; they are skipped unless set.
	IncludeBackground bool

	// Replace translations the document already carries.
	Overwrite bool
}

// LineItems collects the lines of doc that need a translation.
func LineItems(doc *lyric.Document, opts DocumentOptions) []Item {
	if doc == nil {
		return nil
	}
	var items []Item
	for i, line := range doc.Lines {
		if line.IsBackground() && !opts.IncludeBackground {
			continue
		}
		if line.Translation != "" && !opts.Overwrite {
			continue
		}
		text := strings.TrimSpace(line.Text())
		if text == "" {
			continue
		}
		items = append(items, Item{Index: i, Text: text})
	}
	return items
}

// TranslateDocument returns a copy of doc with Line.Translation filled from
// tr, and the number of lines that received a translation. doc itself is
// not modified.
func TranslateDocument(
	ctx context.Context,
	tr Translator,
	doc *lyric.Document,
	opts DocumentOptions,
) (*lyric.Document, int, error) {
	out := doc.Clone()
	items := LineItems(out, opts)
	if len(items) == 0 {
		return out, 0, nil
	}

	var (
		results []Result
		err     error
	)
	if ct, ok := tr.(ConcurrentTranslator); ok && opts.Concurrency > 1 {
		results, err = ct.TranslateWithConcurrency(ctx, items, opts.Concurrency)
	} else {
		results, err = tr.Translate(ctx, items)
	}
	if err != nil {
		return nil, 0, err
	}

	requested := make(map[int]bool, len(items))
	for _, item := range items {
		requested[item.Index] = true
	}

	applied := 0
	for _, r := range results {
		if !requested[r.Index] {
			return nil, 0, fmt.Errorf("translation returned unknown line index %d", r.Index)
		}
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		out.Lines[r.Index].Translation = text
		applied++
	}

	return out, applied, nil
}
