package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// ID is the key a lyric format is registered under.
type ID string

const (
	LRC   ID = "lrc"
	ESLRC ID = "eslrc"
	QRC   ID = "qrc"
	YRC   ID = "yrc"
	LYS   ID = "lys"
	LQE   ID = "lqe"
	LYL   ID = "lyl"
	TTML  ID = "ttml"
	SRT   ID = "srt"
	VTT   ID = "vtt"
	ASS   ID = "ass"
	TXT   ID = "txt"
)

type Capability int

const (
	CapParse Capability = iota
	CapSerialize
)

func (c Capability) String() string {
	if c == CapSerialize {
		return "serialize"
	}
	return "parse"
}

// Descriptor is what the registry knows about one format.
type Descriptor struct {
	ID                ID
	DisplayName       string
	Extensions        []string
	SupportsParse     bool
	SupportsSerialize bool
	// AlwaysAvailable formats are offered for export regardless of what the
	// registry reports for them.
	AlwaysAvailable bool
	// Lossy describes what the serializer drops for this format.
	Lossy string
}

// Parser turns raw text into a document. Parsers never assign ids.
type Parser interface {
	Parse(raw string) (*lyric.Document, error)
}

// Serializer turns a document into text. It must not fail or mutate doc.
type Serializer interface {
	Serialize(doc *lyric.Document, opts Options) string
}

// Options tune serialization.
type Options struct {
	// Title is used by formats with a document title field (ASS, TTML).
	Title string
	// OmitBackground drops background vocal lines.
	OmitBackground bool
}

type entry struct {
	desc       Descriptor
	parser     Parser
	serializer Serializer
}

// Registry maps format ids to descriptors and codecs. List order is
// registration order.
type Registry struct {
	order   []ID
	entries map[ID]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[ID]entry)}
}

// Register adds a format. Capability flags are derived from which codecs are
// non-nil; a second registration of the same id is rejected.
func (r *Registry) Register(desc Descriptor, p Parser, s Serializer) error {
	if desc.ID == "" {
		return errors.New("format id is required")
	}
	if _, exists := r.entries[desc.ID]; exists {
		return fmt.Errorf("format %q already registered", desc.ID)
	}
	desc.SupportsParse = p != nil
	desc.SupportsSerialize = s != nil
	desc.Extensions = append([]string(nil), desc.Extensions...)
	r.entries[desc.ID] = entry{desc: desc, parser: p, serializer: s}
	r.order = append(r.order, desc.ID)
	return nil
}

func (r *Registry) mustRegister(desc Descriptor, p Parser, s Serializer) {
	if err := r.Register(desc, p, s); err != nil {
		panic(err)
	}
}

func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].desc)
	}
	return out
}

// Supports reports false for unknown ids.
func (r *Registry) Supports(id ID, c Capability) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	switch c {
	case CapParse:
		return e.desc.SupportsParse
	case CapSerialize:
		return e.desc.SupportsSerialize
	default:
		return false
	}
}

func (r *Registry) Describe(id ID) (Descriptor, error) {
	e, ok := r.entries[id]
	if !ok {
		return Descriptor{}, &UnknownFormatError{ID: id}
	}
	return e.desc, nil
}

func (r *Registry) Parser(id ID) (Parser, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, &UnknownFormatError{ID: id}
	}
	if e.parser == nil {
		return nil, fmt.Errorf("format %q cannot be parsed", id)
	}
	return e.parser, nil
}

func (r *Registry) Serializer(id ID) (Serializer, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, &UnknownFormatError{ID: id}
	}
	if e.serializer == nil {
		return nil, fmt.Errorf("format %q cannot be serialized", id)
	}
	return e.serializer, nil
}

// ForExtension returns every format that claims the file extension of path.
func (r *Registry) ForExtension(path string) []Descriptor {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = "." + strings.ToLower(strings.TrimPrefix(path, "."))
	}
	var out []Descriptor
	for _, id := range r.order {
		d := r.entries[id].desc
		for _, e := range d.Extensions {
			if e == ext {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Default returns a registry holding every format this module implements.
func Default() *Registry {
	r := NewRegistry()
	r.mustRegister(Descriptor{
		ID:          LRC,
		DisplayName: "LyRiC",
		Extensions:  []string{".lrc"},
		Lossy:       "one span per line; word timing, role and duet are dropped; line ends survive as empty end-marker stamps",
	}, lrcCodec{}, lrcCodec{})
	r.mustRegister(Descriptor{
		ID:              ESLRC,
		DisplayName:     "ESLyRiC",
		Extensions:      []string{".lrc"},
		AlwaysAvailable: true,
		Lossy:           "overlapping word ends collapse onto the next word start; role and duet are dropped",
	}, eslrcCodec{}, eslrcCodec{})
	r.mustRegister(Descriptor{
		ID:          QRC,
		DisplayName: "QQ Music QRC",
		Extensions:  []string{".qrc"},
		Lossy:       "role and duet are dropped; background lines survive only as parenthesized text",
	}, qrcCodec{}, qrcCodec{})
	r.mustRegister(Descriptor{
		ID:          YRC,
		DisplayName: "NetEase YRC",
		Extensions:  []string{".yrc"},
		Lossy:       "role and duet are dropped",
	}, yrcCodec{}, yrcCodec{})
	r.mustRegister(Descriptor{
		ID:          LYS,
		DisplayName: "Lyricify Syllable",
		Extensions:  []string{".lys"},
		Lossy:       "translations are dropped",
	}, lysCodec{}, lysCodec{})
	r.mustRegister(Descriptor{
		ID:          LQE,
		DisplayName: "Lyricify Quick Export",
		Extensions:  []string{".lqe"},
		Lossy:       "translations are kept as line-synced LRC",
	}, lqeCodec{}, lqeCodec{})
	r.mustRegister(Descriptor{
		ID:          LYL,
		DisplayName: "Lyricify Lines",
		Extensions:  []string{".lyl"},
		Lossy:       "one span per line; word timing, role and duet are dropped",
	}, lylCodec{}, lylCodec{})
	r.mustRegister(Descriptor{
		ID:          TTML,
		DisplayName: "TTML",
		Extensions:  []string{".ttml", ".xml"},
		Lossy:       "obscene flags and empty beats are dropped",
	}, ttmlCodec{}, ttmlCodec{})
	r.mustRegister(Descriptor{
		ID:          SRT,
		DisplayName: "SubRip",
		Extensions:  []string{".srt"},
		Lossy:       "one cue per line; word timing and role are dropped",
	}, srtCodec{}, srtCodec{})
	r.mustRegister(Descriptor{
		ID:          VTT,
		DisplayName: "WebVTT",
		Extensions:  []string{".vtt"},
		Lossy:       "one cue per line; word timing and role are dropped",
	}, vttCodec{}, vttCodec{})
	r.mustRegister(Descriptor{
		ID:              ASS,
		DisplayName:     "ASS subtitles",
		Extensions:      []string{".ass"},
		AlwaysAvailable: true,
		Lossy:           "word timing is rounded to centiseconds",
	}, nil, assCodec{})
	r.mustRegister(Descriptor{
		ID:          TXT,
		DisplayName: "Plain text",
		Extensions:  []string{".txt"},
		Lossy:       "import only; lines carry no timing",
	}, txtCodec{}, nil)
	return r
}
