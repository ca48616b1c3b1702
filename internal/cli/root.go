// Package cli implements the smartcredit command line.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rpggio/smartcredit/internal/app"
	"github.com/rpggio/smartcredit/internal/config"
	"github.com/rpggio/smartcredit/pkg/logging"
	"github.com/spf13/cobra"
)

type root struct {
	dbPath  string
	cfg     config.Config
	logger  *slog.Logger
	logFile *logging.FileWriter
}

// NewRootCmd builds the smartcredit command tree.
func NewRootCmd() *cobra.Command {
	r := &root{}
	cmd := &cobra.Command{
		Use:           "smartcredit",
		Short:         "keep track of customer credit",
		Long:          `smartcredit records who owes the shop money, marks payments, backs the ledger up and builds WhatsApp payment reminders.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if r.logFile != nil {
				return r.logFile.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&r.dbPath, "db", "", "database path (overrides SMARTCREDIT_DB_PATH)")

	cmd.AddCommand(
		addCommand(r),
		listCommand(r),
		editCommand(r),
		payCommand(r),
		deleteCommand(r),
		pruneCommand(r),
		summaryCommand(r),
		backupCommand(r),
		reportCommand(r),
		remindCommand(r),
		historyCommand(r),
		serveCommand(r),
	)
	return cmd
}

func (r *root) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if r.dbPath != "" {
		cfg.DB.Path = r.dbPath
	}
	r.cfg = cfg

	var logWriter io.Writer = cmd.ErrOrStderr()
	if cfg.Log.Path != "" {
		fileWriter, err := logging.OpenFile(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log file error: %v\n", err)
		} else {
			r.logFile = fileWriter
			logWriter = fileWriter
		}
	}
	r.logger = logging.New(logWriter, cfg.Log.Level)
	return nil
}

func (r *root) open(opts ...app.Option) (*app.App, error) {
	a, err := app.New(r.cfg, r.logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return a, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}

// confirm asks a yes/no question on the command's streams; anything but
// y or yes is a no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
