package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jwulff/stenogram/internal/output"
)

func NewShowCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "show <position|id>",
		Short: "Print a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(deps.Store, args[0])
			if err != nil {
				return err
			}
			output.NewFormatter(os.Stdout).Transcript(t)
			return nil
		},
	}
}
