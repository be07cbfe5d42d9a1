package cli

import (
	"path/filepath"

	"github.com/mgpai22/lyrico/internal/format"
	"github.com/mgpai22/lyrico/internal/host"
	"github.com/mgpai22/lyrico/internal/pipeline"
	"github.com/mgpai22/lyrico/internal/store"
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [lyric_file]",
		Short: "Convert a lyric file to another format",
		Long: `Import a lyric file and export it in another format in one step.

The input format is taken from --from or guessed from the file extension;
the output format from --to or the extension of --output. Without --output
the result is saved next to the input under the same base name. Use
"-o -" to print it and "-" as the input to read standard input.

Examples:
  lyrico convert song.ttml --to lys
  lyrico convert song.lrc -o song.qrc
  lyrico convert song.yrc --to eslrc -o -
  cat song.lrc | lyrico convert - --from lrc --to vtt --clipboard`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args[0])
		},
	}

	cmd.Flags().StringP("from", "f", "", "Input format (default: guessed from the file extension)")
	cmd.Flags().StringP("to", "t", "", "Output format (default: guessed from --output)")
	addExportFlags(cmd)
	return cmd
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("clipboard", false, "Copy the result to the clipboard instead of writing a file")
	cmd.Flags().String("title", "", "Document title for formats that carry one (ASS, TTML)")
	cmd.Flags().Bool("omit-background", false, "Drop background vocal lines")
}

func exportSettings(cmd *cobra.Command) (format.Options, pipeline.Target) {
	title, _ := cmd.Flags().GetString("title")
	omit, _ := cmd.Flags().GetBool("omit-background")
	clipboard, _ := cmd.Flags().GetBool("clipboard")

	target := pipeline.TargetFile
	if clipboard {
		target = pipeline.TargetClipboard
	}
	return format.Options{Title: title, OmitBackground: omit}, target
}

func (a *app) runConvert(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")

	fromID, err := inputFormat(a.registry, input, from)
	if err != nil {
		return err
	}
	toID, err := outputFormat(a.registry, to, output)
	if err != nil {
		return err
	}

	// one-shot conversions never touch the configured store
	backend := store.NewMemoryStore(saveNameFor(input))
	a.useStore(backend)

	p := a.newPipeline(cmd, backend)
	p.Picker = &host.PathPicker{Path: input, Stdin: cmd.InOrStdin()}
	opts, target := exportSettings(cmd)
	p.Options = opts

	dir := "."
	if input != "-" {
		dir = filepath.Dir(input)
	}
	writer, disk := a.fileWriter(cmd, dir)
	p.Writer = writer

	a.logger.Infow("Converting lyric",
		"input", input,
		"from", fromID,
		"to", toID,
		"target", target,
	)

	if err := p.Import(ctx, fromID); err != nil {
		return finishOp(err)
	}
	if err := p.Export(ctx, toID, target); err != nil {
		return finishOp(err)
	}

	if disk != nil && disk.LastPath != "" {
		a.logger.Infow("Wrote lyric file", "path", disk.LastPath)
	}
	return nil
}
