package cli

import (
	"fmt"

	"github.com/mgpai22/lyrico/internal/pipeline"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current document",
		Long: `Serialize the current document and save it, print it or copy it to
the clipboard.

Without --output the file is named after the imported file with the
extension of the chosen format. Existing files are only replaced after
confirmation or with --overwrite.

Examples:
  lyrico --store redis export --to lys
  lyrico --store redis export --to ass --title "My Song" -o karaoke.ass
  lyrico --store redis export --to lrc --clipboard`,
		Args: cobra.NoArgs,
		RunE: a.runExport,
	}

	cmd.Flags().StringP("to", "t", "", "Export format (default: guessed from --output)")
	addExportFlags(cmd)
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	to, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")
	id, err := outputFormat(a.registry, to, output)
	if err != nil {
		return err
	}

	backend, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	p := a.newPipeline(cmd, backend)
	opts, target := exportSettings(cmd)
	p.Options = opts
	writer, disk := a.fileWriter(cmd, ".")
	p.Writer = writer

	if err := p.Export(ctx, id, target); err != nil {
		return finishOp(err)
	}

	switch {
	case target == pipeline.TargetClipboard:
		fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to the clipboard\n", id)
	case disk != nil && disk.LastPath != "":
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", id, disk.LastPath)
	}
	return nil
}
