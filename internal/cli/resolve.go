package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/lyrico/internal/format"
)

func parseFormatID(r *format.Registry, s string) (format.ID, format.Descriptor, error) {
	id := format.ID(strings.ToLower(strings.TrimSpace(s)))
	d, err := r.Describe(id)
	if err != nil {
		return "", d, fmt.Errorf("%w (run 'lyrico formats' for the list)", err)
	}
	return id, d, nil
}

// inputFormat resolves the format to import path as: --from wins, otherwise
// the first importable format claiming the file extension.
func inputFormat(r *format.Registry, path, from string) (format.ID, error) {
	if from != "" {
		id, d, err := parseFormatID(r, from)
		if err != nil {
			return "", err
		}
		if !d.SupportsParse {
			return "", fmt.Errorf("format %q cannot be imported", id)
		}
		return id, nil
	}
	if path == "" || path == "-" {
		return "", fmt.Errorf("--from is required when reading standard input")
	}
	for _, d := range r.ForExtension(path) {
		if d.SupportsParse {
			return d.ID, nil
		}
	}
	return "", fmt.Errorf("cannot tell the lyric format of %s: use --from", filepath.Base(path))
}

// outputFormat resolves the export format: --to wins, otherwise the first
// exportable format claiming the extension of the output path. Whether the
// format can actually be written is left to the pipeline.
func outputFormat(r *format.Registry, to, output string) (format.ID, error) {
	if to != "" {
		id, _, err := parseFormatID(r, to)
		return id, err
	}
	if output != "" && output != "-" {
		for _, d := range r.ForExtension(output) {
			if exportable(d) {
				return d.ID, nil
			}
		}
	}
	return "", fmt.Errorf("an export format is required: use --to")
}

// saveNameFor is the name a document read from path is saved under.
func saveNameFor(path string) string {
	if path == "" || path == "-" {
		return ""
	}
	return filepath.Base(path)
}
