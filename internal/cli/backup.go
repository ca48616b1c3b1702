package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/rpggio/smartcredit/internal/export"
	"github.com/spf13/cobra"
)

func backupCommand(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "export or restore the whole ledger as JSON",
	}
	cmd.AddCommand(backupExportCommand(r), backupImportCommand(r))
	return cmd
}

func backupExportCommand(r *root) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "write the ledger to a backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			b, err := a.Ledger.Export(cmd.Context())
			if err != nil {
				return err
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(b.Data)
				return err
			}
			if output == "" {
				output = b.FileName
			}
			if err := os.WriteFile(output, b.Data, 0o644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file, - for stdout (default "+ledger.BackupFileName+")")
	return cmd
}

func backupImportCommand(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "replace the ledger with a backup file",
		Long:  `import replaces every record with the contents of the file; - reads stdin. A rejected file leaves the ledger untouched.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader
			if args[0] == "-" {
				src = cmd.InOrStdin()
			} else {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read backup: %w", err)
				}
				src = bytes.NewReader(data)
			}

			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Ledger.Import(cmd.Context(), src)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d records\n", n)
			return nil
		},
	}
}

func reportCommand(r *root) *cobra.Command {
	var (
		output string
		search string
		status string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "write the ledger to an Excel workbook",
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
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			if err := export.WriteReport(f, records); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report with %d records written to %s\n", len(records), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", export.FileName, "destination file")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&status, "status", "all", "all, paid or unpaid")
	return cmd
}
