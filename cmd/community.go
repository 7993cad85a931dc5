package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "List community events in the selected region",
	RunE: func(cmd *cobra.Command, args []string) error {
		catFlag, _ := cmd.Flags().GetString("category")
		subFlag, _ := cmd.Flags().GetString("sub")

		category := taxonomy.Category(catFlag)
		sub := taxonomy.SubCategory(subFlag)
		if category != "" && !slices.Contains(taxonomy.Categories(), category) {
			return fmt.Errorf("unknown category %q", catFlag)
		}
		if sub != "" {
			if category == "" {
				return fmt.Errorf("--sub requires --category")
			}
			if !taxonomy.IsSubCategoryOf(category, sub) {
				return fmt.Errorf("%q is not a sub-category of %s", subFlag, category)
			}
		}

		d, err := openDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		p := d.regions.Current()
		events := p.Events(category, sub)
		if len(events) == 0 {
			fmt.Fprintf(out, "No community events in %s for this filter.\n", p.DisplayName())
			return nil
		}

		fmt.Fprintf(out, "Community events in %s\n\n", p.DisplayName())
		for _, e := range events {
			fmt.Fprintf(out, "%s  [%s / %s]\n", e.Title, e.Category.Label(), e.SubCategory.Label())
			if e.Description != "" {
				fmt.Fprintf(out, "  %s\n", e.Description)
			}
			if e.URL != "" {
				fmt.Fprintf(out, "  %s\n", e.URL)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	communityCmd.Flags().String("category", "", "Filter by category (Tourism, Health, DisasterPrevention, Education, Other)")
	communityCmd.Flags().String("sub", "", "Filter by sub-category (requires --category)")
}
