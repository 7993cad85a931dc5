package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete statistics, conversations and quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		all, _ := cmd.Flags().GetBool("all")
		if !yes {
			return fmt.Errorf("this deletes your statistics, conversations and quizzes; re-run with --yes to confirm")
		}

		ctx := cmd.Context()
		d, err := openDeps(ctx, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.stats.Reset(ctx); err != nil {
			return fmt.Errorf("reset statistics: %w", err)
		}
		if err := d.log.Clear(ctx); err != nil {
			return fmt.Errorf("clear conversations: %w", err)
		}
		if err := d.store.SnapshotRepo().Delete(ctx, store.KeyDynamicQuizzes); err != nil {
			return fmt.Errorf("delete quizzes: %w", err)
		}
		if all {
			if err := d.store.EventRepo().ClearLLMEvents(ctx); err != nil {
				return fmt.Errorf("clear LLM events: %w", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "All data has been reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
	resetCmd.Flags().Bool("all", false, "Also delete the LLM request log")
}
