package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/rpggio/smartcredit/internal/export"
	"github.com/rpggio/smartcredit/internal/mcp"
)

// maxBackupBytes bounds uploaded backups.
const maxBackupBytes = 10 << 20

// MCPHandler handles MCP method dispatch.
type MCPHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// LedgerService serves backup downloads, restores and reports.
type LedgerService interface {
	Export(ctx context.Context) (*ledger.Backup, error)
	Import(ctx context.Context, r io.Reader) (int, error)
	List(ctx context.Context, opts ledger.FilterOptions) []ledger.Customer
}

// Options configures the HTTP router. Metrics and MCP are optional.
type Options struct {
	Handler MCPHandler
	Ledger  LedgerService
	Metrics http.Handler
	MCP     http.Handler
	Logger  *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	handler MCPHandler
	ledger  LedgerService
	logger  *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))

	srv := &Server{handler: opts.Handler, ledger: opts.Ledger, logger: logger}

	r.Get("/health", srv.handleHealth)
	r.Post("/rpc", srv.handleRPC)
	r.Get("/backup", srv.handleBackupDownload)
	r.Post("/backup", srv.handleBackupRestore)
	r.Get("/report.xlsx", srv.handleReport)

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		if errors.Is(err, errParse) {
			WriteError(w, nil, ErrParseCode, "parse error", nil)
			return
		}
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	result, err := s.handler.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		WriteHandlerError(w, req.ID, err)
		return
	}

	WriteResult(w, req.ID, result)
}

func (s *Server) handleBackupDownload(w http.ResponseWriter, r *http.Request) {
	backup, err := s.ledger.Export(r.Context())
	if err != nil {
		s.logger.Error("backup export failed", "error", err)
		http.Error(w, "backup unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, backup.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(backup.Data)
}

func (s *Server) handleBackupRestore(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBackupBytes)
	n, err := s.ledger.Import(r.Context(), body)
	if err != nil {
		if apiErr := mcp.MapError(err); apiErr != nil {
			writeJSON(w, http.StatusBadRequest, apiErr)
			return
		}
		s.logger.Error("backup import failed", "error", err)
		http.Error(w, "restore failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, mcp.ImportResult{Imported: n})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	status, err := ledger.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, mcp.MapError(err))
		return
	}
	records := s.ledger.List(r.Context(), ledger.FilterOptions{
		Search: r.URL.Query().Get("search"),
		Status: status,
	})

	var buf bytes.Buffer
	if err := export.WriteReport(&buf, records); err != nil {
		s.logger.Error("report generation failed", "error", err)
		http.Error(w, "report unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
