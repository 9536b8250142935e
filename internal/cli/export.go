package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwulff/stenogram/internal/export"
	"github.com/jwulff/stenogram/internal/output"
)

func NewExportCmd(deps *Dependencies) *cobra.Command {
	var format string
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <position|id>",
		Short: "Export a transcript to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(deps.Store, args[0])
			if err != nil {
				return err
			}

			exporter := deps.Exporter
			if outDir != "" {
				exporter = export.Exporter{Dir: outDir}
			}

			var path string
			switch format {
			case "text":
				path, err = exporter.AsText(t)
			case "doc":
				path, err = exporter.AsDocument(t)
			default:
				return fmt.Errorf("unknown format %q (want text or doc)", format)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			output.NewFormatter(os.Stdout).ExportDone(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "export format: text or doc")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")

	return cmd
}
