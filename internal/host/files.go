package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/lyrico/internal/pipeline"
)

// PathPicker stands in for a file dialog: it "picks" a path given on the
// command line. An empty path is treated as a cancelled dialog and "-" reads
// standard input.
type PathPicker struct {
	Path  string
	Stdin io.Reader
}

func (p *PathPicker) OpenFile(ctx context.Context, extensions []string) (pipeline.File, error) {
	if p.Path == "" {
		return nil, nil
	}
	if p.Path == "-" {
		in := p.Stdin
		if in == nil {
			in = os.Stdin
		}
		return &readerFile{name: "stdin", r: in}, nil
	}
	info, err := os.Stat(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("lyric file not found: %s", p.Path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", p.Path)
	}
	return &LocalFile{Path: p.Path}, nil
}

// LocalFile is a file on disk.
type LocalFile struct {
	Path string
}

func (f *LocalFile) Name() string { return filepath.Base(f.Path) }

func (f *LocalFile) ReadText(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type readerFile struct {
	name string
	r    io.Reader
}

func (f *readerFile) Name() string { return f.name }

func (f *readerFile) ReadText(ctx context.Context) (string, error) {
	data, err := io.ReadAll(f.r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DiskWriter saves exports to disk. Path wins over Dir + suggested name.
// An existing file is only replaced when Overwrite is set or Confirm agrees;
// otherwise the write counts as cancelled.
type DiskWriter struct {
	Dir       string
	Path      string
	Overwrite bool
	Confirm   func(path string) bool

	// LastPath is the file written by the most recent successful call.
	LastPath string
}

func (w *DiskWriter) WriteFile(ctx context.Context, displayName string, extensions []string, content string, opts pipeline.WriteOptions) (bool, error) {
	path := w.Path
	if path == "" {
		name := opts.SuggestedName
		if name == "" {
			return false, errors.New("no output file name")
		}
		path = filepath.Join(w.Dir, name)
	}

	if _, err := os.Stat(path); err == nil && !w.Overwrite {
		if w.Confirm == nil || !w.Confirm(path) {
			return false, nil
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s file: %w", displayName, err)
	}
	w.LastPath = path
	return true, nil
}

// StdoutWriter prints exports instead of saving them.
type StdoutWriter struct {
	Out io.Writer
}

func (w *StdoutWriter) WriteFile(ctx context.Context, displayName string, extensions []string, content string, opts pipeline.WriteOptions) (bool, error) {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}
	if _, err := io.WriteString(out, content); err != nil {
		return false, err
	}
	return true, nil
}

// ConfirmPrompt asks a yes/no question on out and reads the answer from in.
// Anything but y or yes is a no.
func ConfirmPrompt(in io.Reader, out io.Writer) func(path string) bool {
	reader := bufio.NewReader(in)
	return func(path string) bool {
		fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
