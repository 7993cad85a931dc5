package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Browse and create quizzes",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		quizzes := d.catalog.Quizzes()
		if len(quizzes) == 0 {
			fmt.Fprintln(out, "No quizzes yet. Create one with `civiclink quiz create <message-id>`.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-44s  %9s  %s\n", "ID", "Title", "Questions", "Created")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, q := range quizzes {
			fmt.Fprintf(out, "%-36s  %-44s  %9d  %s\n",
				q.ID, truncate(q.Title, 44), len(q.Questions), q.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(out, "\n%d quizzes\n", len(quizzes))
		return nil
	},
}

var quizSeedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "List conversation replies a quiz can be created from",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		seeds := quiz.Seeds(d.log.Messages())
		if len(seeds) == 0 {
			fmt.Fprintln(out, "No classified conversations yet. Ask about a problem first.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-36s  %s\n", "Message ID", "Category", "Problem")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, s := range seeds {
			pair := s.Category.Label() + " / " + s.SubCategory.Label()
			fmt.Fprintf(out, "%-36s  %-36s  %s\n", s.MessageID, pair, truncate(s.Problem, 40))
		}
		return nil
	},
}

var quizCreateCmd = &cobra.Command{
	Use:   "create <message-id>",
	Short: "Generate a quiz from a classified reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(ctx, true)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.requireLLM(); err != nil {
			return err
		}

		m, ok := d.log.Get(args[0])
		if !ok {
			return fmt.Errorf("message %q not found", args[0])
		}
		seed, ok := quiz.SeedFrom(m)
		if !ok {
			return fmt.Errorf("message %q cannot seed a quiz: %w", args[0], quiz.ErrInvalidSeed)
		}

		q, err := d.catalog.CreateFromSeed(ctx, seed)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %q (%s) with %d questions.\n", q.Title, q.ID, len(q.Questions))
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <quiz-id>",
	Short: "Print a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		d, err := openDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer d.Close()

		q, ok := d.catalog.Get(args[0])
		if !ok {
			return fmt.Errorf("quiz %q not found", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, q.Title)
		fmt.Fprintf(out, "Based on: %s\n\n", q.BasedOnProblem)
		for i, qq := range q.Questions {
			fmt.Fprintf(out, "%d. %s\n", i+1, qq.Question)
			for j, opt := range qq.Options {
				mark := " "
				if answers && j == qq.CorrectIndex {
					mark = "*"
				}
				fmt.Fprintf(out, "  %s %c) %s\n", mark, 'A'+j, opt)
			}
			if answers {
				fmt.Fprintf(out, "  → %s\n", qq.Explanation)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	quizShowCmd.Flags().Bool("answers", false, "Mark correct options and show explanations")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizSeedsCmd)
	quizCmd.AddCommand(quizCreateCmd)
	quizCmd.AddCommand(quizShowCmd)
}
