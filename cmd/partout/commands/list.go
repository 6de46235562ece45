package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls"},
		Short:   "List entry ids, optionally filtered by a case-insensitive substring",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return c.app.List(cmd.Context(), c.options(), query)
		},
	}
}
