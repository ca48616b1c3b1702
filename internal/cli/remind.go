package cli

import (
	"fmt"

	"github.com/rpggio/smartcredit/internal/app"
	"github.com/rpggio/smartcredit/internal/desktop"
	"github.com/rpggio/smartcredit/internal/domain/reminder"
	"github.com/spf13/cobra"
)

func remindCommand(r *root) *cobra.Command {
	var (
		noCopy bool
		noOpen bool
	)
	cmd := &cobra.Command{
		Use:   "remind <id>",
		Short: "send a WhatsApp payment reminder",
		Long:  `remind copies the reminder text to the clipboard and opens the WhatsApp link in the browser.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var clip reminder.Clipboard
			var opener reminder.Opener
			if !noCopy {
				clip = desktop.Clipboard{}
			}
			if !noOpen {
				opener = desktop.Browser{}
			}
			a, err := r.open(app.WithDesktop(clip, opener))
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.Ledger.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("record #%d: %w", id, err)
			}
			rem, err := a.Reminders.Send(cmd.Context(), *c)
			if rem != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", rem.Message, rem.Link)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "do not copy the message to the clipboard")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "print the link instead of opening it")
	return cmd
}
