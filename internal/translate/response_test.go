package translate

import (
	"strings"
	"testing"
)

func TestExtractResults(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain valid array",
			input: `[
				{"index": 0, "text": "夜空に光る星"},
				{"index": 3, "text": "君を待っている"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble with valid array",
			input: `Here are the translated lyrics:
			[
				{"index": 0, "text": "Sous la pluie"},
				{"index": 1, "text": "Je danse encore"}
			]`,
			wantCount: 2,
		},
		{
			name: "valid array with trailing text",
			input: `[
				{"index": 0, "text": "Bajo la luna"}
			]
			Enjoy the song!`,
			wantCount: 1,
		},
		{
			name: "wrapper object with results key",
			input: `{"results": [
				{"index": 0, "text": "Translated"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with lines key",
			input: `{"lines": [
				{"index": 0, "text": "Übersetzt"},
				{"index": 1, "text": "Noch einmal"}
			]}`,
			wantCount: 2,
		},
		{
			name: "wrapper object with unknown key",
			input: `{"lyrics": [
				{"index": 0, "text": "Переведено"}
			]}`,
			wantCount: 1,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   `I cannot translate these lyrics.`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `[{"index": 0, "text": "incomplete"`,
			wantErr: true,
		},
		{
			name:    "array with empty text",
			input:   `[{"index": 0, "text": ""}]`,
			wantErr: true,
		},
		{
			name: "backslash markup echoed back",
			input: `[
				{"index": 0, "text": "{\k50}la la\N la"}
			]`,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := extractResults(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("got %d results, want %d", len(results), tt.wantCount)
			}
		})
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	got := fixInvalidEscapes(`"a\Nb\n\"c\""`)
	want := `"a\\Nb\n\"c\""`
	if got != want {
		t.Errorf("fixInvalidEscapes() = %s, want %s", got, want)
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON",
			input: `[{"index": 0, "text": "hello"}]`,
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "json code fence",
			input: "```json\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "plain code fence",
			input: "```\n[{\"index\": 0, \"text\": \"hello\"}]\n```",
			want:  `[{"index": 0, "text": "hello"}]`,
		},
		{
			name:  "with leading/trailing whitespace",
			input: "  \n\n```json\n[{\"index\": 0}]\n```\n\n  ",
			want:  `[{"index": 0}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResponseCount(t *testing.T) {
	reply := "```json\n[{\"index\": 0, \"text\": \"uno\"}, {\"index\": 1, \"text\": \"dos\"}]\n```"

	results, err := parseResponse(reply, 2)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if results[1].Text != "dos" {
		t.Errorf("unexpected results %+v", results)
	}

	if _, err := parseResponse(reply, 3); err == nil {
		t.Error("expected a count mismatch to fail")
	}
	if _, err := parseResponse("   ", 1); err == nil {
		t.Error("expected an empty reply to fail")
	}
}

func TestValidateResults(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    bool
	}{
		{"empty slice", []Result{}, false},
		{"nil slice", nil, false},
		{"result with text", []Result{{Index: 0, Text: "hello"}}, true},
		{"result with empty text", []Result{{Index: 0, Text: ""}}, false},
		{
			"multiple results one valid",
			[]Result{{Index: 0, Text: ""}, {Index: 1, Text: "valid"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateResults(tt.results); got != tt.want {
				t.Errorf("validateResults() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{
		InputLanguage:  "English",
		TargetLanguage: "Japanese",
		Prompt:         "Keep it singable.",
	}
	items := []Item{
		{Index: 0, Text: "Hello world"},
		{Index: 4, Text: "Goodbye"},
	}

	prompt := BuildPrompt(opts, items)

	for _, want := range []string{
		"English song lyric lines",
		"to Japanese",
		"Hello world",
		`"index": 4`,
		"Additional instructions: Keep it singable.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
}

func TestBuildPromptWithoutInputLanguage(t *testing.T) {
	prompt := BuildPrompt(Options{TargetLanguage: "Spanish"}, []Item{{Index: 0, Text: "Hello"}})

	if strings.Contains(prompt, "English") || strings.Contains(prompt, "Additional instructions") {
		t.Error("prompt should only mention what was configured")
	}
	if !strings.Contains(prompt, "to Spanish") {
		t.Error("prompt should contain target language")
	}
}
