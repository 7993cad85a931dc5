package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show problem statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		snapshot := d.stats.Snapshot()

		fmt.Fprintf(out, "Problems categorized:  %d\n", snapshot.Total())
		fmt.Fprintf(out, "Quizzes created:       %d\n", d.catalog.Len())
		if snapshot.Total() == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-4s  %-22s  %6s  %6s\n", "#", "Category", "Count", "Share")
		fmt.Fprintln(out, strings.Repeat("─", 44))
		for i, r := range snapshot.Ranked() {
			fmt.Fprintf(out, "%-4d  %-22s  %6d  %5.1f%%\n", i+1, r.Category.Label(), r.Count, r.Share*100)
		}

		for _, r := range snapshot.Ranked() {
			if r.Count == 0 {
				continue
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, r.Category.Label())
			cs := snapshot[r.Category]
			for _, sub := range taxonomy.SubCategoriesOf(r.Category) {
				fmt.Fprintf(out, "  %-22s  %6d\n", sub.Label(), cs.SubCategories[sub])
			}
		}
		return nil
	},
}
