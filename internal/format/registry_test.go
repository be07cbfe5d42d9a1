package format

import (
	"errors"
	"testing"

	"github.com/mgpai22/lyrico/internal/lyric"
)

func TestDefaultRegistryCapabilities(t *testing.T) {
	r := Default()

	tests := []struct {
		id        ID
		parse     bool
		serialize bool
		always    bool
	}{
		{LRC, true, true, false},
		{ESLRC, true, true, true},
		{QRC, true, true, false},
		{YRC, true, true, false},
		{LYS, true, true, false},
		{LQE, true, true, false},
		{LYL, true, true, false},
		{TTML, true, true, false},
		{SRT, true, true, false},
		{VTT, true, true, false},
		{ASS, false, true, true},
		{TXT, true, false, false},
	}

	list := r.List()
	if len(list) != len(tests) {
		t.Fatalf("expected %d formats, got %d", len(tests), len(list))
	}

	for i, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			if list[i].ID != tt.id {
				t.Errorf("position %d: expected %s, got %s", i, tt.id, list[i].ID)
			}
			if got := r.Supports(tt.id, CapParse); got != tt.parse {
				t.Errorf("Supports(parse) = %v, want %v", got, tt.parse)
			}
			if got := r.Supports(tt.id, CapSerialize); got != tt.serialize {
				t.Errorf("Supports(serialize) = %v, want %v", got, tt.serialize)
			}
			desc, err := r.Describe(tt.id)
			if err != nil {
				t.Fatalf("Describe failed: %v", err)
			}
			if desc.AlwaysAvailable != tt.always {
				t.Errorf("AlwaysAvailable = %v, want %v", desc.AlwaysAvailable, tt.always)
			}
			if desc.Lossy == "" {
				t.Errorf("expected a lossy policy for %s", tt.id)
			}
			if desc.DisplayName == "" || len(desc.Extensions) == 0 {
				t.Errorf("incomplete descriptor: %+v", desc)
			}
		})
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Descriptor{ID: LRC}, lrcCodec{}, lrcCodec{}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(Descriptor{ID: LRC}, lrcCodec{}, nil); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := r.Register(Descriptor{}, lrcCodec{}, nil); err == nil {
		t.Error("expected empty id to fail")
	}
	if len(r.List()) != 1 {
		t.Errorf("expected 1 format, got %d", len(r.List()))
	}
}

func TestRegistryDerivesCapabilities(t *testing.T) {
	r := NewRegistry()
	// flags passed in are ignored in favour of the codecs
	err := r.Register(Descriptor{ID: "x", SupportsParse: true, SupportsSerialize: true}, nil, assCodec{})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if r.Supports("x", CapParse) {
		t.Error("expected no parse support without a parser")
	}
	if !r.Supports("x", CapSerialize) {
		t.Error("expected serialize support")
	}
}

func TestRegistryUnknownFormat(t *testing.T) {
	r := Default()

	_, err := r.Describe("nope")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	var unknown *UnknownFormatError
	if !errors.As(err, &unknown) || unknown.ID != "nope" {
		t.Errorf("expected UnknownFormatError for nope, got %v", err)
	}

	if r.Supports("nope", CapParse) {
		t.Error("unknown format must not support parse")
	}
	if _, err := r.Parser("nope"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Parser: expected ErrUnknownFormat, got %v", err)
	}
	if _, err := r.Serializer("nope"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Serializer: expected ErrUnknownFormat, got %v", err)
	}
}

func TestRegistryMissingCodec(t *testing.T) {
	r := Default()
	if _, err := r.Parser(ASS); err == nil {
		t.Error("expected ass to have no parser")
	}
	if _, err := r.Serializer(TXT); err == nil {
		t.Error("expected txt to have no serializer")
	}
}

func TestForExtension(t *testing.T) {
	r := Default()

	tests := []struct {
		path string
		want []ID
	}{
		{"song.lrc", []ID{LRC, ESLRC}},
		{"/tmp/SONG.TTML", []ID{TTML}},
		{"lyrics.xml", []ID{TTML}},
		{"qrc", []ID{QRC}},
		{".srt", []ID{SRT}},
		{"notes.md", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := r.ForExtension(tt.path)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i, d := range got {
				if d.ID != tt.want[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.want[i], d.ID)
				}
			}
		})
	}
}

func TestSerializersAcceptEmptyDocuments(t *testing.T) {
	r := Default()
	for _, d := range r.List() {
		if !d.SupportsSerialize {
			continue
		}
		t.Run(string(d.ID), func(t *testing.T) {
			s, err := r.Serializer(d.ID)
			if err != nil {
				t.Fatalf("Serializer failed: %v", err)
			}
			s.Serialize(&lyric.Document{}, Options{})
			s.Serialize(nil, Options{OmitBackground: true})
		})
	}
}
