package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpggio/smartcredit/internal/domain/activity"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/rpggio/smartcredit/internal/domain/reminder"
)

// LedgerService defines ledger operations needed by MCP.
type LedgerService interface {
	Add(ctx context.Context, fields ledger.Fields) (*ledger.Customer, error)
	Update(ctx context.Context, id int64, fields ledger.Fields) error
	MarkPaid(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Prune(ctx context.Context) (int, error)
	Get(ctx context.Context, id int64) (*ledger.Customer, error)
	List(ctx context.Context, opts ledger.FilterOptions) []ledger.Customer
	Summary(ctx context.Context) ledger.Summary
	Export(ctx context.Context) (*ledger.Backup, error)
	Import(ctx context.Context, r io.Reader) (int, error)
}

// ReminderService defines reminder operations needed by MCP.
type ReminderService interface {
	Build(c ledger.Customer) (*reminder.Reminder, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Observer records operation outcomes and ledger balances.
type Observer interface {
	ObserveOp(op string, err error)
	SetLedger(records []ledger.Customer)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Ledger    LedgerService
	Reminders ReminderService
	Activity  ActivityService
	// Metrics is optional.
	Metrics Observer
}

// Handler dispatches MCP commands.
type Handler struct {
	ledger    LedgerService
	reminders ReminderService
	activity  ActivityService
	metrics   Observer
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services) *Handler {
	return &Handler{
		ledger:    services.Ledger,
		reminders: services.Reminders,
		activity:  services.Activity,
		metrics:   services.Metrics,
	}
}

var mutatingMethods = map[string]bool{
	"add_record":    true,
	"update_record": true,
	"mark_paid":     true,
	"delete_record": true,
	"prune_paid":    true,
	"import_backup": true,
}

// Handle dispatches MCP requests to domain services. Domain errors come back
// as *APIError.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	result, err := h.dispatch(ctx, method, params)
	if h.metrics != nil {
		h.metrics.ObserveOp(method, err)
		if err == nil && mutatingMethods[method] {
			h.metrics.SetLedger(h.ledger.List(ctx, ledger.FilterOptions{}))
		}
	}
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "add_record":
		var req AddRecordParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ledger.Add(ctx, req.toFields())
	case "update_record":
		var req UpdateRecordParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		id := int64(req.ID)
		if err := h.ledger.Update(ctx, id, req.toFields()); err != nil {
			return nil, err
		}
		return h.mutationResult(ctx, id)
	case "mark_paid":
		var req RecordIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		id := int64(req.ID)
		before, err := h.lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := h.ledger.MarkPaid(ctx, id); err != nil {
			return nil, err
		}
		res, err := h.mutationResult(ctx, id)
		if err != nil {
			return nil, err
		}
		res.Changed = before != nil && !before.Paid && res.Changed
		return res, nil
	case "delete_record":
		var req RecordIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		id := int64(req.ID)
		before, err := h.lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := h.ledger.Delete(ctx, id); err != nil {
			return nil, err
		}
		return MutationResult{ID: id, Changed: before != nil, Record: before}, nil
	case "prune_paid":
		removed, err := h.ledger.Prune(ctx)
		if err != nil {
			return nil, err
		}
		return PruneResult{Removed: removed}, nil
	case "list_records":
		var req ListRecordsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		status, err := ledger.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		records := h.ledger.List(ctx, ledger.FilterOptions{Search: req.Search, Status: status})
		return ListRecordsResponse{
			Records: records,
			Count:   len(records),
			Summary: h.ledger.Summary(ctx),
		}, nil
	case "get_record":
		var req RecordIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ledger.Get(ctx, int64(req.ID))
	case "get_summary":
		return h.ledger.Summary(ctx), nil
	case "export_backup":
		backup, err := h.ledger.Export(ctx)
		if err != nil {
			return nil, err
		}
		return BackupResponse{FileName: backup.FileName, Data: string(backup.Data)}, nil
	case "import_backup":
		var req ImportBackupParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		n, err := h.ledger.Import(ctx, strings.NewReader(req.Data))
		if err != nil {
			return nil, err
		}
		return ImportResult{Imported: n}, nil
	case "build_reminder":
		var req RecordIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		c, err := h.ledger.Get(ctx, int64(req.ID))
		if err != nil {
			return nil, err
		}
		return h.reminders.Build(*c)
	case "get_activity":
		var req GetActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := activity.ListActivityOptions{Limit: req.Limit}
		if req.RecordID != nil {
			id := int64(*req.RecordID)
			opts.RecordID = &id
		}
		if req.Type != "" {
			typ := activity.ActivityType(req.Type)
			opts.ActivityType = &typ
		}
		return h.activity.GetRecentActivity(ctx, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

// lookup returns the record or nil when it doesn't exist.
func (h *Handler) lookup(ctx context.Context, id int64) (*ledger.Customer, error) {
	c, err := h.ledger.Get(ctx, id)
	if errors.Is(err, ledger.ErrRecordNotFound) {
		return nil, nil
	}
	return c, err
}

func (h *Handler) mutationResult(ctx context.Context, id int64) (MutationResult, error) {
	c, err := h.lookup(ctx, id)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{ID: id, Changed: c != nil, Record: c}, nil
}

func decodeParams(params json.RawMessage, out any) error {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
