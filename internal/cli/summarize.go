package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwulff/stenogram/internal/output"
)

func NewSummarizeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <position|id>",
		Short: "Generate and store a summary for a transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected one transcript argument")
			}

			t, err := resolve(deps.Store, args[0])
			if err != nil {
				return err
			}

			s, err := deps.Summarizer.Summarize(cmd.Context(), t.Text)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}

			t.SetSummary(s)
			if err := deps.Store.Update(t); err != nil {
				return fmt.Errorf("save: %w", err)
			}

			output.NewFormatter(os.Stdout).SummaryDone(t)
			return nil
		},
	}
}
