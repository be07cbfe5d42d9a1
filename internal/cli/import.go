package cli

import (
	"fmt"

	"github.com/mgpai22/lyrico/internal/format"
	"github.com/mgpai22/lyrico/internal/host"
	"github.com/mgpai22/lyrico/internal/store"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [lyric_file]",
		Short: "Replace the current document with a lyric file",
		Long: `Parse a lyric file and make it the current document.

Every line and word gets a fresh id. The file name is remembered so later
exports are saved under the same base name. The memory store only lives for
one run; use --store redis to import now and export later.

Examples:
  lyrico --store redis import song.ttml
  lyrico --store redis import - --from lrc < song.lrc
  lyrico --store redis import --text "first line
second line"`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runImport,
	}

	cmd.Flags().StringP("from", "f", "", "Input format (default: guessed from the file extension)")
	cmd.Flags().String("text", "", "Import this text instead of a file (plain text unless --from is set)")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	from, _ := cmd.Flags().GetString("from")
	text, _ := cmd.Flags().GetString("text")
	if len(args) == 0 && !cmd.Flags().Changed("text") {
		return fmt.Errorf("a lyric file or --text is required")
	}

	backend, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store.Kind(a.cfg.Store) == store.KindMemory {
		a.logger.Warnw("The memory store is discarded when lyrico exits; use --store redis to keep the document")
	}

	p := a.newPipeline(cmd, backend)

	if len(args) == 0 {
		id := format.TXT
		if from != "" {
			if id, err = inputFormat(a.registry, "", from); err != nil {
				return err
			}
		}
		if err := p.ImportText(ctx, id, text); err != nil {
			return finishOp(err)
		}
	} else {
		path := args[0]
		id, err := inputFormat(a.registry, path, from)
		if err != nil {
			return err
		}
		p.Picker = &host.PathPicker{Path: path, Stdin: cmd.InOrStdin()}
		if err := p.Import(ctx, id); err != nil {
			return finishOp(err)
		}
		if name := saveNameFor(path); name != "" {
			if err := backend.SetSaveName(ctx, name); err != nil {
				return fmt.Errorf("failed to remember file name: %w", err)
			}
		}
	}

	doc, err := backend.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lines\n", len(doc.Lines))
	return nil
}
