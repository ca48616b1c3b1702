package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/spf13/cobra"
)

func fieldFlags(cmd *cobra.Command, f *ledger.Fields) {
	cmd.Flags().StringVarP(&f.Name, "name", "n", "", "customer name")
	cmd.Flags().StringVarP(&f.Phone, "phone", "p", "", "phone number without country code")
	cmd.Flags().StringVarP(&f.Amount, "amount", "a", "", "amount owed")
	cmd.Flags().StringVar(&f.Note, "note", "", "free-form note")
	cmd.Flags().StringVar(&f.Date, "date", "", "credit date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.Due, "due", "", "due date (YYYY-MM-DD)")
}

func addCommand(r *root) *cobra.Command {
	var fields ledger.Fields
	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a credit record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.Ledger.Add(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s (%s)\n", c.ID, c.Name, c.Amount)
			return nil
		},
	}
	fieldFlags(cmd, &fields)
	return cmd
}

func listCommand(r *root) *cobra.Command {
	var (
		search string
		status string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list credit records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := ledger.ParseStatus(status)
			if err != nil {
				return err
			}
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			records := a.Ledger.List(cmd.Context(), ledger.FilterOptions{Search: search, Status: st})
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			if err := writeTable(cmd.OutOrStdout(), records); err != nil {
				return err
			}
			sum := a.Ledger.Summary(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal Pending: ₹%s\n", sum.PendingTotal)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&status, "status", "all", "all, paid or unpaid")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

func writeTable(w io.Writer, records []ledger.Customer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tAMOUNT\tDATE\tDUE\tSTATUS\tNOTE")
	for _, c := range records {
		due := "-"
		if c.Due != nil {
			due = *c.Due
		}
		status := "Pending"
		if c.Paid {
			status = "Paid"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Phone, c.Amount, c.Date, due, status, c.Note)
	}
	return tw.Flush()
}

func editCommand(r *root) *cobra.Command {
	var fields ledger.Fields
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "change a credit record",
		Long:  `edit replaces only the fields passed as flags; the rest keep their current values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := a.Ledger.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("record #%d: %w", id, err)
			}
			merged := mergeFields(cmd, *current, fields)
			if err := a.Ledger.Update(cmd.Context(), id, merged); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated #%d %s\n", id, merged.Name)
			return nil
		},
	}
	fieldFlags(cmd, &fields)
	return cmd
}

// mergeFields starts from the stored record and applies only the flags the
// user set.
func mergeFields(cmd *cobra.Command, c ledger.Customer, set ledger.Fields) ledger.Fields {
	out := ledger.Fields{
		Name:   c.Name,
		Phone:  c.Phone,
		Amount: c.Amount.String(),
		Note:   c.Note,
		Date:   c.Date,
	}
	if c.Due != nil {
		out.Due = *c.Due
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		out.Name = set.Name
	}
	if flags.Changed("phone") {
		out.Phone = set.Phone
	}
	if flags.Changed("amount") {
		out.Amount = set.Amount
	}
	if flags.Changed("note") {
		out.Note = set.Note
	}
	if flags.Changed("date") {
		out.Date = set.Date
	}
	if flags.Changed("due") {
		out.Due = set.Due
	}
	return out
}

func payCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "mark a record as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.Ledger.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("record #%d: %w", id, err)
			}
			if c.Paid {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s is already paid\n", id, c.Name)
				return nil
			}
			if err := a.Ledger.MarkPaid(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked #%d %s paid\n", id, c.Name)
			return nil
		},
	}
}

func deleteCommand(r *root) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete a credit record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.Ledger.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("record #%d: %w", id, err)
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Delete #%d %s?", id, c.Name)) {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			if err := a.Ledger.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d %s\n", id, c.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func pruneCommand(r *root) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "delete every paid record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if !yes && !confirm(cmd, "Delete all paid records?") {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			n, err := a.Ledger.Prune(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d paid records\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func summaryCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "show record counts and the pending total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			sum := a.Ledger.Summary(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Records:       %d\n", sum.Total)
			fmt.Fprintf(out, "Pending:       %d\n", sum.Unpaid)
			fmt.Fprintf(out, "Paid:          %d\n", sum.Paid)
			fmt.Fprintf(out, "Total Pending: ₹%s\n", sum.PendingTotal)
			return nil
		},
	}
}
