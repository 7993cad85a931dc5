package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/region"
)

var regionCmd = &cobra.Command{
	Use:   "region [name]",
	Short: "Show or change the selected region",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(ctx, false)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			p, err := d.regions.Select(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Region set to %s.\n", p.DisplayName())
			return nil
		}

		cur := d.regions.Current()
		for _, p := range d.regions.Profiles() {
			mark := " "
			if p.Name == cur.Name {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %-12s  %s\n", mark, p.Name, p.DisplayName())
		}
		if cur.Stats != nil && cur.Stats.Population > 0 {
			fmt.Fprintf(out, "\n%s: population %s, %s households (%s)\n",
				cur.DisplayName(), region.Thousands(cur.Stats.Population),
				region.Thousands(cur.Stats.Households), cur.Stats.LastUpdated)
		}
		return nil
	},
}
