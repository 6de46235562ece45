package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/partout/internal/core/domain"
)

func (c *CLI) operationCmd(use, short string, kind domain.OperationKind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Do(cmd.Context(), c.options(), kind, args[0])
		},
	}
}

func (c *CLI) newShowCmd() *cobra.Command {
	return c.operationCmd("show", "Print the decrypted entry", domain.OpFetchEntry)
}

func (c *CLI) newCopyCmd() *cobra.Command {
	return c.operationCmd("copy", "Copy the password to the clipboard", domain.OpCopyPassword)
}

func (c *CLI) newLoginCmd() *cobra.Command {
	return c.operationCmd("login", "Copy the login to the clipboard", domain.OpCopyLogin)
}

func (c *CLI) newIDCmd() *cobra.Command {
	return c.operationCmd("id", "Copy the entry id to the clipboard", domain.OpCopyID)
}

func (c *CLI) newOTPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otp <id>",
		Short: "Print a one-time password, or copy it with --copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.OpFetchOTP
			if copyCode, _ := cmd.Flags().GetBool("copy"); copyCode {
				kind = domain.OpCopyOTP
			}
			return c.app.Do(cmd.Context(), c.options(), kind, args[0])
		},
	}
	cmd.Flags().Bool("copy", false, "Copy the code to the clipboard instead of printing it")
	return cmd
}

func (c *CLI) newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.UI(cmd.Context(), c.options())
		},
	}
}
