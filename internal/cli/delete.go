package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwulff/stenogram/internal/output"
)

func NewDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <position|id>",
		Short: "Delete a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(deps.Store, args[0])
			if err != nil {
				return err
			}

			if err := deps.Store.Delete(t.ID); err != nil {
				return fmt.Errorf("delete: %w", err)
			}

			output.NewFormatter(os.Stdout).Success(fmt.Sprintf("Deleted %q", t.Title))
			return nil
		},
	}
}
