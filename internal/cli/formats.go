package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mgpai22/lyrico/internal/format"
	"github.com/spf13/cobra"
)

func newFormatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the lyric formats lyrico can read and write",
		Long: `List every registered lyric format with its file extensions and
whether it can be imported, exported, or both.

With --export only the formats offered for export are listed; ESLyRiC and
ASS are always offered.

Examples:
  lyrico formats
  lyrico formats --export
  lyrico formats --import --lossy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exportOnly, _ := cmd.Flags().GetBool("export")
			importOnly, _ := cmd.Flags().GetBool("import")
			lossy, _ := cmd.Flags().GetBool("lossy")

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			header := "ID\tNAME\tEXTENSIONS\tIMPORT\tEXPORT"
			if lossy {
				header += "\tDROPS"
			}
			fmt.Fprintln(tw, header)

			for _, d := range listFormats(a.registry, exportOnly, importOnly) {
				row := fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
					d.ID,
					d.DisplayName,
					strings.Join(d.Extensions, ","),
					yesNo(d.SupportsParse),
					yesNo(exportable(d)),
				)
				if lossy {
					row += "\t" + d.Lossy
				}
				fmt.Fprintln(tw, row)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Bool("export", false, "Only list formats offered for export")
	cmd.Flags().Bool("import", false, "Only list formats that can be imported")
	cmd.Flags().Bool("lossy", false, "Show what each format drops on export")
	return cmd
}

// exportable mirrors the export menu: serialize support or always available.
func exportable(d format.Descriptor) bool {
	return d.SupportsSerialize || d.AlwaysAvailable
}

func listFormats(r *format.Registry, exportOnly, importOnly bool) []format.Descriptor {
	var out []format.Descriptor
	for _, d := range r.List() {
		if exportOnly && !exportable(d) {
			continue
		}
		if importOnly && !d.SupportsParse {
			continue
		}
		out = append(out, d)
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
