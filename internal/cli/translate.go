package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/lyrico/internal/config"
	"github.com/mgpai22/lyrico/internal/format"
	"github.com/mgpai22/lyrico/internal/host"
	"github.com/mgpai22/lyrico/internal/pipeline"
	"github.com/mgpai22/lyrico/internal/store"
	"github.com/mgpai22/lyrico/internal/translate"
	"github.com/spf13/cobra"
)

func newTranslateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [lyric_file]",
		Short: "Translate lyric lines to another language using AI",
		Long: `Translate every lead vocal line and store the result as the line's
translation.

With a lyric file the file is imported first and the translated document is
exported (Lyricify Quick Export by default, which keeps translations next to
the lyrics). Without a file the current document in the store is translated
in place.

Examples:
  lyrico translate song.ttml --target-language japanese
  lyrico translate song.lrc -t es --to ttml -o song.es.ttml
  lyrico --store redis translate -t french --provider anthropic`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runTranslate,
	}

	cmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	cmd.Flags().
		StringP("language", "l", "", "Language of the lyrics (default: detected by the model)")
	cmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY)")
	cmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	cmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	cmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	cmd.Flags().
		String("prompt", "", "Extra instructions for the model")
	cmd.Flags().
		Int("concurrency", 0, "Number of parallel translation workers (default LYRICO_TRANSLATE_CONCURRENCY or 3)")
	cmd.Flags().
		Int("batch-size", 0, "Number of lyric lines per API request (default LYRICO_TRANSLATE_BATCH_SIZE or 50)")
	cmd.Flags().
		Bool("include-background", false, "Also translate background vocal lines")
	cmd.Flags().
		Bool("retranslate", false, "Replace translations the document already has")
	cmd.Flags().
		StringP("from", "f", "", "Input format (default: guessed from the file extension)")
	cmd.Flags().
		String("to", "", "Export format for a translated file (default lqe)")
	addExportFlags(cmd)

	_ = cmd.MarkFlagRequired("target-language")
	return cmd
}

type translateSettings struct {
	provider    translate.Provider
	apiKey      string
	options     translate.Options
	document    translate.DocumentOptions
	concurrency int
}

func (a *app) translateSettings(cmd *cobra.Command) (translateSettings, error) {
	targetLang, _ := cmd.Flags().GetString("target-language")
	inputLang, _ := cmd.Flags().GetString("language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	providerStr, _ := cmd.Flags().GetString("provider")
	prompt, _ := cmd.Flags().GetString("prompt")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	includeBackground, _ := cmd.Flags().GetBool("include-background")
	retranslate, _ := cmd.Flags().GetBool("retranslate")

	var s translateSettings

	if strings.TrimSpace(targetLang) == "" {
		return s, fmt.Errorf("target language is required")
	}
	if inputLang != "" &&
		strings.EqualFold(strings.TrimSpace(inputLang), strings.TrimSpace(targetLang)) {
		return s, fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	provider, err := translate.ParseProvider(providerStr)
	if err != nil {
		return s, err
	}

	if apiKey == "" {
		apiKey = a.cfg.APIKey(string(provider))
	}
	if apiKey == "" {
		return s, fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			config.APIKeyEnv(string(provider)),
		)
	}

	if err := validateModel(provider, model, modelOverride); err != nil {
		return s, err
	}

	if !cmd.Flags().Changed("concurrency") {
		concurrency = a.cfg.TranslateConcurrency
	}
	if !cmd.Flags().Changed("batch-size") {
		batchSize = a.cfg.TranslateBatchSize
	}
	if concurrency <= 0 {
		return s, fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize <= 0 {
		return s, fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	s.provider = provider
	s.apiKey = apiKey
	s.options = translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		Prompt:         prompt,
		BatchSize:      batchSize,
	}
	s.document = translate.DocumentOptions{
		Concurrency:       concurrency,
		IncludeBackground: includeBackground,
		Overwrite:         retranslate,
	}
	return s, nil
}

func (a *app) runTranslate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := a.translateSettings(cmd)
	if err != nil {
		return err
	}

	var (
		backend store.Backend
		p       *pipeline.Pipeline
		input   string
	)
	if len(args) == 1 {
		input = args[0]
		from, _ := cmd.Flags().GetString("from")
		fromID, err := inputFormat(a.registry, input, from)
		if err != nil {
			return err
		}
		mem := store.NewMemoryStore(saveNameFor(input))
		a.useStore(mem)
		backend = mem
		p = a.newPipeline(cmd, backend)
		p.Picker = &host.PathPicker{Path: input, Stdin: cmd.InOrStdin()}
		if err := p.Import(ctx, fromID); err != nil {
			return finishOp(err)
		}
	} else {
		if backend, err = a.openStore(ctx); err != nil {
			return err
		}
		p = a.newPipeline(cmd, backend)
	}

	doc, err := backend.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if doc.IsEmpty() {
		return pipeline.ErrEmptyContent
	}

	translator, err := translate.Factory(ctx, settings.provider, settings.apiKey, settings.options)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	a.logger.Infow("Translating lyrics",
		"provider", settings.provider,
		"target_language", settings.options.TargetLanguage,
		"lines", len(translate.LineItems(doc, settings.document)),
		"concurrency", settings.document.Concurrency,
	)

	translated, n, err := translate.TranslateDocument(ctx, translator, doc, settings.document)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	if err := backend.Set(ctx, translated); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	a.logger.Infow("Translation complete", "translated_lines", n)

	return a.exportTranslation(cmd, p, input)
}

// exportTranslation writes the translated document when it came from a file
// or when an export was asked for explicitly.
func (a *app) exportTranslation(cmd *cobra.Command, p *pipeline.Pipeline, input string) error {
	to, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")
	clipboard, _ := cmd.Flags().GetBool("clipboard")
	if input == "" && to == "" && output == "" && !clipboard {
		return nil
	}

	var id format.ID = format.LQE
	if to != "" || output != "" {
		var err error
		if id, err = outputFormat(a.registry, to, output); err != nil {
			return err
		}
	}

	opts, target := exportSettings(cmd)
	p.Options = opts
	dir := "."
	if input != "" && input != "-" {
		dir = filepath.Dir(input)
	}
	writer, disk := a.fileWriter(cmd, dir)
	p.Writer = writer

	if err := p.Export(cmd.Context(), id, target); err != nil {
		return finishOp(err)
	}
	if disk != nil && disk.LastPath != "" {
		a.logger.Infow("Wrote translated lyric", "path", disk.LastPath)
	}
	return nil
}
