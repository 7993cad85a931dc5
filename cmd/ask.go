package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/civiclink/civiclink/internal/chat"
)

var askCmd = &cobra.Command{
	Use:   "ask <problem...>",
	Short: "Describe a problem and get advice",
	Args:  cobra.MinimumNArgs(1),
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

		_, reply, err := d.chat.Send(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		printReply(cmd, reply)
		return nil
	},
}

func printReply(cmd *cobra.Command, m chat.Message) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, m.Text)
	if len(m.URLs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Sources:")
		for _, u := range m.URLs {
			if u.Title != "" {
				fmt.Fprintf(out, "  • %s\n    %s\n", u.Title, u.URI)
			} else {
				fmt.Fprintf(out, "  • %s\n", u.URI)
			}
		}
	}
	if m.Classified() {
		fmt.Fprintf(out, "\nCategory: %s / %s\n", m.Category.Label(), m.SubCategory.Label())
	}
}
