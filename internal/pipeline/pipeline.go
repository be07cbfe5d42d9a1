package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mgpai22/lyrico/internal/format"
	"github.com/mgpai22/lyrico/internal/logging"
	"github.com/mgpai22/lyrico/internal/lyric"
)

type Op string

const (
	OpImport Op = "import"
	OpExport Op = "export"
)

type Stage string

const (
	StageIdle           Stage = "idle"
	StageReading        Stage = "reading"
	StageParsing        Stage = "parsing"
	StageNormalizing    Stage = "normalizing"
	StageCommitting     Stage = "committing"
	StageValidating     Stage = "validating"
	StageBuildingHeader Stage = "building_header"
	StageApplyingQuirks Stage = "applying_quirks"
	StageSerializing    Stage = "serializing"
	StageDelivering     Stage = "delivering"
)

const defaultBaseName = "lyric"

// Pipeline runs imports into and exports out of the document store. Every
// operation is independent; a Pipeline may be shared between goroutines as
// long as its collaborators allow it.
type Pipeline struct {
	Registry  *format.Registry
	Store     Store
	Picker    FilePicker
	Writer    FileWriter
	Clipboard Clipboard
	Notifier  Notifier
	Logger    *logging.Logger

	// Options are passed to every serializer.
	Options format.Options

	// NewID mints line and word ids; uuid v4 when nil.
	NewID func() string

	// OnStage observes every state transition.
	OnStage func(op Op, stage Stage)
}

// New returns a pipeline over the default format registry.
func New(store Store, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		Registry: format.Default(),
		Store:    store,
		Logger:   logger,
	}
}

// Import asks the picker for a file, parses it as id and replaces the stored
// document. On any failure the stored document is left as it was.
func (p *Pipeline) Import(ctx context.Context, id format.ID) (err error) {
	defer p.finish(OpImport, id, &err)

	desc, parser, err := p.parserFor(id)
	if err != nil {
		return err
	}

	p.stage(OpImport, id, StageReading)
	if p.Picker == nil {
		return &ReadError{Err: errors.New("no file picker configured")}
	}
	f, err := p.Picker.OpenFile(ctx, desc.Extensions)
	if err != nil {
		if IsCancelled(err) {
			return err
		}
		return &ReadError{Err: err}
	}
	if f == nil {
		return ErrImportCancelled
	}
	raw, err := f.ReadText(ctx)
	if err != nil {
		return &ReadError{Name: f.Name(), Err: err}
	}

	p.log().Debugw("Read lyric file", "file", f.Name(), "bytes", len(raw))
	return p.importRaw(ctx, id, parser, raw)
}

// ImportText parses raw as id and replaces the stored document.
func (p *Pipeline) ImportText(ctx context.Context, id format.ID, raw string) (err error) {
	defer p.finish(OpImport, id, &err)

	_, parser, err := p.parserFor(id)
	if err != nil {
		return err
	}
	return p.importRaw(ctx, id, parser, raw)
}

func (p *Pipeline) parserFor(id format.ID) (format.Descriptor, format.Parser, error) {
	desc, err := p.Registry.Describe(id)
	if err != nil {
		return desc, nil, err
	}
	parser, err := p.Registry.Parser(id)
	if err != nil {
		return desc, nil, err
	}
	return desc, parser, nil
}

func (p *Pipeline) importRaw(ctx context.Context, id format.ID, parser format.Parser, raw string) error {
	p.stage(OpImport, id, StageParsing)
	doc, err := parser.Parse(raw)
	if err != nil {
		return err
	}

	p.stage(OpImport, id, StageNormalizing)
	doc = p.normalize(doc)
	if err := doc.CheckIDs(); err != nil {
		return fmt.Errorf("failed to assign ids: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	p.stage(OpImport, id, StageCommitting)
	if err := p.Store.Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	p.log().Infow("Imported lyric",
		"format", id,
		"lines", len(doc.Lines),
		"metadata", len(doc.Metadata),
	)
	return nil
}

// normalize returns a copy with fresh ids and the editor-only flags reset.
func (p *Pipeline) normalize(doc *lyric.Document) *lyric.Document {
	out := doc.Clone()
	for i := range out.Lines {
		line := &out.Lines[i]
		line.ID = p.newID()
		line.IgnoreSync = false
		for j := range line.Words {
			w := &line.Words[j]
			w.ID = p.newID()
			w.Obscene = false
			w.EmptyBeat = 0
		}
	}
	return out
}

// Export serializes the stored document as id and delivers it to target.
// The document is read once; later imports do not affect a running export.
func (p *Pipeline) Export(ctx context.Context, id format.ID, target Target) (err error) {
	defer p.finish(OpExport, id, &err)

	p.stage(OpExport, id, StageValidating)
	desc, err := p.Registry.Describe(id)
	if err != nil {
		return err
	}
	current, err := p.Store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	snapshot := current.Clone()
	if snapshot.IsEmpty() {
		return ErrEmptyContent
	}
	if !desc.AlwaysAvailable && !p.Registry.Supports(id, format.CapSerialize) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, id)
	}

	content, err := p.render(id, snapshot)
	if err != nil {
		return err
	}

	p.stage(OpExport, id, StageDelivering)
	if err := p.deliver(ctx, desc, target, content); err != nil {
		return err
	}

	p.log().Infow("Exported lyric",
		"format", id,
		"target", target,
		"lines", len(snapshot.Lines),
		"bytes", len(content),
	)
	return nil
}

func (p *Pipeline) deliver(ctx context.Context, desc format.Descriptor, target Target, content string) error {
	switch target {
	case TargetClipboard:
		if p.Clipboard == nil {
			return &DeliveryError{Target: target, Err: errors.New("no clipboard configured")}
		}
		if err := p.Clipboard.WriteText(ctx, content); err != nil {
			if IsCancelled(err) {
				return ErrDeliveryCancelled
			}
			return &DeliveryError{Target: target, Err: err}
		}
		return nil
	default:
		if p.Writer == nil {
			return &DeliveryError{Target: target, Err: errors.New("no file writer configured")}
		}
		name, err := p.suggestedName(ctx, desc)
		if err != nil {
			return &DeliveryError{Target: target, Err: err}
		}
		written, err := p.Writer.WriteFile(ctx, desc.DisplayName, desc.Extensions, content, WriteOptions{SuggestedName: name})
		if err != nil {
			if IsCancelled(err) {
				return ErrDeliveryCancelled
			}
			return &DeliveryError{Target: target, Err: err}
		}
		if !written {
			return ErrDeliveryCancelled
		}
		return nil
	}
}

// suggestedName is the store's save name with its final extension replaced
// by the format's first extension.
func (p *Pipeline) suggestedName(ctx context.Context, desc format.Descriptor) (string, error) {
	saveName, err := p.Store.SaveName(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read save name: %w", err)
	}
	base := BaseName(saveName)
	if len(desc.Extensions) > 0 {
		return base + desc.Extensions[0], nil
	}
	return base, nil
}

// BaseName strips the final extension from a save name.
func BaseName(saveName string) string {
	name := strings.TrimSpace(saveName)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" {
		return defaultBaseName
	}
	return name
}

// Render returns the full text of doc in format id: header, quirk-fixed body
// and footer. doc is not modified.
func (p *Pipeline) Render(id format.ID, doc *lyric.Document) (string, error) {
	if _, err := p.Registry.Describe(id); err != nil {
		return "", err
	}
	return p.render(id, doc)
}

func (p *Pipeline) render(id format.ID, doc *lyric.Document) (string, error) {
	serializer, err := p.Registry.Serializer(id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	p.stage(OpExport, id, StageBuildingHeader)
	var meta []lyric.MetadataEntry
	if doc != nil {
		meta = doc.Metadata
	}
	header := format.BuildHeader(id, meta)
	footer := format.BuildFooter(id)

	p.stage(OpExport, id, StageApplyingQuirks)
	fixed := format.ApplyQuirks(id, doc)

	p.stage(OpExport, id, StageSerializing)
	body := serializer.Serialize(fixed, p.Options)

	var sb strings.Builder
	for _, l := range header {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	for _, l := range footer {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (p *Pipeline) stage(op Op, id format.ID, s Stage) {
	p.log().Debugw("Pipeline stage", "op", op, "format", id, "stage", s)
	if p.OnStage != nil {
		p.OnStage(op, s)
	}
}

// finish returns the operation to idle and turns err into a notification.
// err is kept so callers can still classify it.
func (p *Pipeline) finish(op Op, id format.ID, errp *error) {
	p.stage(op, id, StageIdle)
	err := *errp
	if err == nil {
		return
	}

	if IsCancelled(err) {
		msg := fmt.Sprintf("%s of %q cancelled", capitalize(string(op)), id)
		if p.Notifier != nil {
			p.log().Debugw(msg)
			p.Notifier.Info(msg)
			return
		}
		p.log().Infow(msg)
		return
	}

	// the notifier is what the user sees; the log only repeats it when verbose
	msg := fmt.Sprintf("Failed to %s lyric with format %q: %v", op, id, err)
	if p.Notifier != nil {
		p.log().Debugw(fmt.Sprintf("Failed to %s lyric", op), "format", id, "error", err)
		p.Notifier.Error(msg)
		return
	}
	p.log().Errorw(fmt.Sprintf("Failed to %s lyric", op), "format", id, "error", err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (p *Pipeline) log() *logging.Logger {
	if p.Logger == nil {
		return logging.Nop()
	}
	return p.Logger
}

func (p *Pipeline) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return uuid.NewString()
}
