package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/rpggio/smartcredit/internal/domain/activity"
	"github.com/spf13/cobra"
)

func historyCommand(r *root) *cobra.Command {
	var (
		recordID int64
		typ      string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "show recent ledger activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			opts := activity.ListActivityOptions{
				Limit: limit,
			}
			if cmd.Flags().Changed("record") {
				opts.RecordID = &recordID
			}
			if cmd.Flags().Changed("type") {
				t := activity.ActivityType(typ)
				opts.ActivityType = &t
			}
			entries, err := a.Activity.GetRecentActivity(cmd.Context(), opts)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tTYPE\tRECORD\tSUMMARY")
			for _, e := range entries {
				record := "-"
				if e.RecordID != nil {
					record = fmt.Sprintf("#%d", *e.RecordID)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04"), e.ActivityType, record, e.Summary)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int64Var(&recordID, "record", 0, "only entries for this record id")
	cmd.Flags().StringVar(&typ, "type", "", "only entries of this type")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries (default 50)")
	return cmd
}
