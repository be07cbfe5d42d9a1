package lyric

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role marks who sings a line.
type Role int

const (
	RoleLead Role = iota
	RoleBackground
)

func (r Role) String() string {
	switch r {
	case RoleBackground:
		return "background"
	default:
		return "lead"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "lead":
		*r = RoleLead
	case "background", "bg":
		*r = RoleBackground
	default:
		return fmt.Errorf("unknown line role %q", string(text))
	}
	return nil
}

// single timed syllable or word
type Word struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	StartTime time.Duration `json:"start_time"`
	EndTime   time.Duration `json:"end_time"`
	Obscene   bool          `json:"obscene,omitempty"`
	EmptyBeat int           `json:"empty_beat,omitempty"`
}

// one lyric line, words are kept in render order
type Line struct {
	ID          string `json:"id"`
	Words       []Word `json:"words"`
	Role        Role   `json:"role"`
	Duet        bool   `json:"duet,omitempty"`
	IgnoreSync  bool   `json:"ignore_sync,omitempty"`
	Translation string `json:"translation,omitempty"`
}

type MetadataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Document is a complete time-synced lyric. Metadata order is not significant.
type Document struct {
	Lines    []Line          `json:"lines"`
	Metadata []MetadataEntry `json:"metadata"`
}

// Text joins the words of the line without separators.
func (l Line) Text() string {
	var sb strings.Builder
	for _, w := range l.Words {
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// StartTime is the start of the first word, or 0 for an empty line.
func (l Line) StartTime() time.Duration {
	if len(l.Words) == 0 {
		return 0
	}
	return l.Words[0].StartTime
}

// EndTime is the latest word end in the line.
func (l Line) EndTime() time.Duration {
	var end time.Duration
	for _, w := range l.Words {
		if w.EndTime > end {
			end = w.EndTime
		}
	}
	return end
}

func (l Line) IsBackground() bool {
	return l.Role == RoleBackground
}

// Clone returns a deep copy of the line.
func (l Line) Clone() Line {
	out := l
	if l.Words != nil {
		out.Words = make([]Word, len(l.Words))
		copy(out.Words, l.Words)
	}
	return out
}

// Clone returns a deep copy that shares no slices with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return &Document{}
	}
	out := &Document{}
	if d.Lines != nil {
		out.Lines = make([]Line, len(d.Lines))
		for i, l := range d.Lines {
			out.Lines[i] = l.Clone()
		}
	}
	if d.Metadata != nil {
		out.Metadata = make([]MetadataEntry, len(d.Metadata))
		copy(out.Metadata, d.Metadata)
	}
	return out
}

// IsEmpty reports whether there is nothing to export.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Lines) == 0
}

// MetadataValue returns the first value stored under key.
func (d *Document) MetadataValue(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, m := range d.Metadata {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

// CheckIDs verifies every line and word has a non-empty id and that no id
// appears twice in the document.
func (d *Document) CheckIDs() error {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	check := func(id, what string, line, word int) error {
		if id == "" {
			return fmt.Errorf("%s at line %d word %d has no id", what, line, word)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate id %q (%s at line %d word %d)", id, what, line, word)
		}
		seen[id] = struct{}{}
		return nil
	}
	for i, l := range d.Lines {
		if err := check(l.ID, "line", i, -1); err != nil {
			return err
		}
		for j, w := range l.Words {
			if err := check(w.ID, "word", i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// IDs collects every line and word id in document order.
func (d *Document) IDs() []string {
	if d == nil {
		return nil
	}
	var ids []string
	for _, l := range d.Lines {
		ids = append(ids, l.ID)
		for _, w := range l.Words {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

func (d *Document) MarshalBinary() ([]byte, error) {
	return json.Marshal(d)
}

func (d *Document) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, d)
}
