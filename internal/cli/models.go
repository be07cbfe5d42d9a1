package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mgpai22/lyrico/internal/translate"
)

var geminiModels = []string{
	"gemini-3-pro-preview",
	"gemini-3-flash-preview",
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
}

var openAIModels = []string{
	"o1", "o3-mini", "o1-pro", "o3",
	"gpt-5", "gpt-5-nano", "gpt-5-mini", "gpt-5-pro",
	"gpt-5.1", "gpt-5.2", "gpt-5.2-pro",
}

func isValidGeminiModel(model string) bool {
	return slices.Contains(geminiModels, strings.TrimSpace(model))
}

func isValidOpenAIModel(model string) bool {
	return slices.Contains(openAIModels, strings.TrimSpace(model))
}

// Anthropic model ids are versioned too often to list.
func isValidAnthropicModel(model string) bool {
	return strings.HasPrefix(strings.TrimSpace(model), "claude-")
}

func validateModel(provider translate.Provider, model string, override bool) error {
	if model == "" || override {
		return nil
	}
	switch provider {
	case translate.ProviderGemini:
		if !isValidGeminiModel(model) {
			return fmt.Errorf(
				"unsupported Gemini model %q: valid models are %s (use --model-override to bypass)",
				model,
				strings.Join(geminiModels, ", "),
			)
		}
	case translate.ProviderOpenAI:
		if !isValidOpenAIModel(model) {
			return fmt.Errorf(
				"unsupported OpenAI model %q: valid models are %s (use --model-override to bypass)",
				model,
				strings.Join(openAIModels, ", "),
			)
		}
	case translate.ProviderAnthropic:
		if !isValidAnthropicModel(model) {
			return fmt.Errorf(
				"unsupported Anthropic model %q: expected a claude-* model id (use --model-override to bypass)",
				model,
			)
		}
	}
	return nil
}
