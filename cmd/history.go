package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/chat"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the conversation log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer d.Close()

		msgs := d.log.Messages()
		if len(msgs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No conversations yet.")
			return nil
		}
		if limit > 0 && len(msgs) > limit {
			msgs = msgs[len(msgs)-limit:]
		}

		out := cmd.OutOrStdout()
		for _, m := range msgs {
			who := "You"
			if m.Role == chat.RoleModel {
				who = "LINK"
			}
			fmt.Fprintf(out, "[%s] %s  (%s)\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), who, m.ID)
			if m.Classified() {
				fmt.Fprintf(out, "  %s / %s\n", m.Category.Label(), m.SubCategory.Label())
			}
			for _, line := range strings.Split(m.Text, "\n") {
				fmt.Fprintf(out, "  %s\n", line)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "Show only the last n messages")
}
