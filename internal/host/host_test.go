package host

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/lyrico/internal/logging"
	"github.com/mgpai22/lyrico/internal/pipeline"
)

func TestPathPicker(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "song.lrc")
	if err := os.WriteFile(path, []byte("[00:01.00]Hi\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	f, err := (&PathPicker{Path: path}).OpenFile(ctx, []string{".lrc"})
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if f.Name() != "song.lrc" {
		t.Errorf("expected name song.lrc, got %q", f.Name())
	}
	text, err := f.ReadText(ctx)
	if err != nil || text != "[00:01.00]Hi\n" {
		t.Errorf("unexpected read %q, %v", text, err)
	}

	f, err = (&PathPicker{}).OpenFile(ctx, nil)
	if err != nil || f != nil {
		t.Errorf("expected empty path to cancel, got %v, %v", f, err)
	}

	if _, err := (&PathPicker{Path: filepath.Join(tmpDir, "missing.lrc")}).OpenFile(ctx, nil); err == nil {
		t.Error("expected missing file to fail")
	}
	if _, err := (&PathPicker{Path: tmpDir}).OpenFile(ctx, nil); err == nil {
		t.Error("expected directory to fail")
	}

	f, err = (&PathPicker{Path: "-", Stdin: strings.NewReader("from stdin")}).OpenFile(ctx, nil)
	if err != nil {
		t.Fatalf("stdin OpenFile failed: %v", err)
	}
	if text, _ := f.ReadText(ctx); text != "from stdin" {
		t.Errorf("unexpected stdin text %q", text)
	}
}

func TestDiskWriter(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	opts := pipeline.WriteOptions{SuggestedName: "song.qrc"}

	w := &DiskWriter{Dir: tmpDir}
	ok, err := w.WriteFile(ctx, "QQ Music QRC", []string{".qrc"}, "first", opts)
	if err != nil || !ok {
		t.Fatalf("first write failed: %v, %v", ok, err)
	}
	want := filepath.Join(tmpDir, "song.qrc")
	if w.LastPath != want {
		t.Errorf("expected %s, got %s", want, w.LastPath)
	}

	// existing file without overwrite or confirmation is a cancel
	ok, err = w.WriteFile(ctx, "QQ Music QRC", []string{".qrc"}, "second", opts)
	if err != nil || ok {
		t.Errorf("expected cancel, got %v, %v", ok, err)
	}
	if data, _ := os.ReadFile(want); string(data) != "first" {
		t.Errorf("file was overwritten: %q", data)
	}

	w.Confirm = func(path string) bool { return path == want }
	ok, err = w.WriteFile(ctx, "QQ Music QRC", []string{".qrc"}, "third", opts)
	if err != nil || !ok {
		t.Fatalf("confirmed write failed: %v, %v", ok, err)
	}
	if data, _ := os.ReadFile(want); string(data) != "third" {
		t.Errorf("expected confirmed overwrite, got %q", data)
	}

	explicit := filepath.Join(tmpDir, "nested", "out.txt")
	w = &DiskWriter{Path: explicit, Overwrite: true}
	if ok, err := w.WriteFile(ctx, "x", nil, "data", opts); err != nil || !ok {
		t.Fatalf("explicit path write failed: %v, %v", ok, err)
	}
	if data, _ := os.ReadFile(explicit); string(data) != "data" {
		t.Errorf("unexpected content %q", data)
	}

	if _, err := (&DiskWriter{Dir: tmpDir}).WriteFile(ctx, "x", nil, "data", pipeline.WriteOptions{}); err == nil {
		t.Error("expected an error without any file name")
	}
}

func TestStdoutWriter(t *testing.T) {
	var buf bytes.Buffer
	ok, err := (&StdoutWriter{Out: &buf}).WriteFile(context.Background(), "x", nil, "content\n", pipeline.WriteOptions{})
	if err != nil || !ok || buf.String() != "content\n" {
		t.Errorf("unexpected result %v, %v, %q", ok, err, buf.String())
	}
}

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		confirm := ConfirmPrompt(strings.NewReader(tt.input), &out)
		if got := confirm("song.lrc"); got != tt.want {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.want, got)
		}
		if !strings.Contains(out.String(), "song.lrc already exists") {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}

func TestSystemClipboard(t *testing.T) {
	ctx := context.Background()

	err := (&SystemClipboard{unsupported: true}).WriteText(ctx, "x")
	if !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("expected ErrClipboardUnavailable, got %v", err)
	}

	var got string
	c := &SystemClipboard{writeAll: func(s string) error { got = s; return nil }}
	if err := c.WriteText(ctx, "lyrics"); err != nil || got != "lyrics" {
		t.Errorf("unexpected write %q, %v", got, err)
	}

	c = &SystemClipboard{writeAll: func(string) error { return errors.New("exit status 1") }}
	if err := c.WriteText(ctx, "x"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("expected ErrClipboardUnavailable, got %v", err)
	}
}

func TestSystemClipboardIntegration(t *testing.T) {
	if os.Getenv("LYRICO_TEST_CLIPBOARD") == "" {
		t.Skip("LYRICO_TEST_CLIPBOARD not set, skipping clipboard test")
	}
	if err := NewSystemClipboard().WriteText(context.Background(), "lyrico"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
}

func TestConsoleNotifier(t *testing.T) {
	var out, errOut bytes.Buffer
	n := &ConsoleNotifier{Out: &out, Err: &errOut, Logger: logging.Nop()}

	n.Info("Export cancelled")
	n.Error("Failed to export")

	if out.String() != "Export cancelled\n" {
		t.Errorf("unexpected info output %q", out.String())
	}
	if errOut.String() != "Error: Failed to export\n" {
		t.Errorf("unexpected error output %q", errOut.String())
	}
}
