package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jwulff/stenogram/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved transcripts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)

			all := deps.Store.All()
			if len(all) == 0 {
				f.Info("No transcripts found")
				return nil
			}

			f.ListHeader(len(all))
			for i, t := range all {
				f.ListItem(i, t)
			}
			return nil
		},
	}
}
