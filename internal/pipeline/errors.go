package pipeline

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCancelled marks a user cancel; it is reported as information, not
	// as a failure.
	ErrCancelled = errors.New("cancelled by user")

	ErrImportCancelled   = fmt.Errorf("import %w", ErrCancelled)
	ErrDeliveryCancelled = fmt.Errorf("delivery %w", ErrCancelled)

	ErrUnsupportedFormat = errors.New("format does not support export")
	ErrEmptyContent      = errors.New("no lyric lines to export")
	ErrDelivery          = errors.New("delivery failed")
	ErrRead              = errors.New("read failed")
)

// Target is where an export is delivered.
type Target int

const (
	TargetFile Target = iota
	TargetClipboard
)

func (t Target) String() string {
	if t == TargetClipboard {
		return "clipboard"
	}
	return "file"
}

// DeliveryError is an I/O or clipboard fault while delivering an export.
type DeliveryError struct {
	Target Target
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to write to %s: %v", e.Target, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Is(target error) bool { return target == ErrDelivery }

// ReadError is a failure to pick or read the import source.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("failed to open lyric file: %v", e.Err)
	}
	return fmt.Sprintf("failed to read %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == ErrRead }

// IsCancelled reports whether err is a user cancel, including a cancelled
// context.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}
