// Package app assembles storage, services and surfaces from configuration.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/smartcredit/internal/config"
	"github.com/rpggio/smartcredit/internal/domain/activity"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/rpggio/smartcredit/internal/domain/reminder"
	"github.com/rpggio/smartcredit/internal/idgen"
	"github.com/rpggio/smartcredit/internal/mcp"
	"github.com/rpggio/smartcredit/internal/metrics"
	"github.com/rpggio/smartcredit/internal/sqlite"
	"github.com/rpggio/smartcredit/internal/transport"
)

var (
	_ ledger.ActivityRepository   = (*activity.Service)(nil)
	_ reminder.ActivityRepository = (*activity.Service)(nil)
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// App holds the wired services for one process.
type App struct {
	DB        *sqlite.DB
	Ledger    *ledger.Service
	Reminders *reminder.Service
	Activity  *activity.Service
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// Option customizes wiring.
type Option func(*options)

type options struct {
	clipboard reminder.Clipboard
	opener    reminder.Opener
	clock     ledger.Clock
}

// WithDesktop lets reminders use the clipboard and open links.
func WithDesktop(clipboard reminder.Clipboard, opener reminder.Opener) Option {
	return func(o *options) {
		o.clipboard = clipboard
		o.opener = opener
	}
}

// WithClock pins the ledger's notion of today.
func WithClock(clock ledger.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New opens the database, applies migrations and builds the services.
func New(cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	ids, err := idgen.New(cfg.Ledger.NodeID)
	if err != nil {
		db.Close()
		return nil, err
	}

	slots := sqlite.NewSlotRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	ledgerOpts := []ledger.Option{ledger.WithSlotKey(cfg.Ledger.SlotKey)}
	if o.clock != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithClock(o.clock))
	}

	activities := activity.NewService(activityRepo, logger)

	a := &App{
		DB:       db,
		Ledger:   ledger.NewService(slots, ids, activities, logger, ledgerOpts...),
		Activity: activities,
		Reminders: reminder.NewService(o.clipboard, o.opener, activities, logger,
			reminder.WithCountryCode(cfg.Reminder.CountryCode)),
		Metrics: metrics.New(),
		Logger:  logger,
	}
	return a, nil
}

// Services exposes the app to the MCP layer.
func (a *App) Services() mcp.Services {
	return mcp.Services{
		Ledger:    a.Ledger,
		Reminders: a.Reminders,
		Activity:  a.Activity,
		Metrics:   a.Metrics,
	}
}

// MCPServer builds the SDK server over the app's services.
func (a *App) MCPServer() *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: a.Services(),
		Logger:   a.Logger,
		Version:  Version,
	})
}

// HTTPHandler serves JSON-RPC, backups, reports, metrics and streamable MCP.
func (a *App) HTTPHandler() http.Handler {
	mcpServer := a.MCPServer()
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)
	return transport.NewServer(transport.Options{
		Handler: mcp.NewHandler(a.Services()),
		Ledger:  a.Ledger,
		Metrics: a.Metrics.Handler(),
		MCP:     mcpHandler,
		Logger:  a.Logger,
	})
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
