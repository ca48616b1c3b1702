package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/rpggio/smartcredit/internal/export"
	"github.com/rpggio/smartcredit/internal/mcp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memStorage struct {
	mu    sync.Mutex
	slots map[string]string
}

func (m *memStorage) Read(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *memStorage) Write(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

type seqIDs struct{ next int64 }

func (s *seqIDs) NextID() int64 {
	s.next++
	return s.next
}

type testHandler struct {
	method string
}

func (h *testHandler) Handle(_ context.Context, method string, _ json.RawMessage) (any, error) {
	h.method = method
	return map[string]string{"method": method}, nil
}

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *ledger.Service) {
	t.Helper()
	svc := ledger.NewService(&memStorage{slots: map[string]string{}}, &seqIDs{}, nil, nil)
	if opts.Ledger == nil {
		opts.Ledger = svc
	}
	if opts.Handler == nil {
		opts.Handler = mcp.NewHandler(mcp.Services{Ledger: svc})
	}
	server := httptest.NewServer(NewServer(opts))
	t.Cleanup(server.Close)
	return server, svc
}

func TestHTTPServer_RPC(t *testing.T) {
	handler := &testHandler{}
	server, _ := newTestServer(t, Options{Handler: handler})

	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"list_records","id":1}`)
	resp, err := http.Post(server.URL+"/rpc", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "list_records", handler.method)
	require.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestHTTPServer_RPCDomainError(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"add_record","params":{"name":"Ravi"},"id":"a"}`)
	resp, err := http.Post(server.URL+"/rpc", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	require.NotNil(t, rpcResp.Error)
	require.Equal(t, ErrDomain, rpcResp.Error.Code)
	require.Equal(t, "amount is required", rpcResp.Error.Message)
}

func TestHTTPServer_RPCParseError(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	resp, err := http.Post(server.URL+"/rpc", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	require.Equal(t, ErrParseCode, rpcResp.Error.Code)
}

func TestHTTPServer_RequestIDPropagates(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	req, err := http.NewRequest(http.MethodGet, server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "req-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))
}

func TestHTTPServer_Health(t *testing.T) {
	server, _ := newTestServer(t, Options{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_BackupRoundTrip(t *testing.T) {
	server, svc := newTestServer(t, Options{})
	ctx := context.Background()
	_, err := svc.Add(ctx, ledger.Fields{Name: "Ravi", Amount: "500"})
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/backup")
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, `attachment; filename="SmartCreditManager-Backup.json"`, resp.Header.Get("Content-Disposition"))
	require.Contains(t, string(data), `"name":"Ravi"`)

	require.NoError(t, svc.Delete(ctx, svc.Load(ctx)[0].ID))
	require.Empty(t, svc.Load(ctx))

	resp, err = http.Post(server.URL+"/backup", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result mcp.ImportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Equal(t, 1, result.Imported)
	require.Len(t, svc.Load(ctx), 1)
}

func TestHTTPServer_BackupRejected(t *testing.T) {
	server, svc := newTestServer(t, Options{})
	_, err := svc.Add(context.Background(), ledger.Fields{Name: "Ravi", Amount: "500"})
	require.NoError(t, err)

	for body, code := range map[string]string{
		`{"not":"a list"}`: "INVALID_BACKUP",
		`garbage`:          "UNREADABLE_BACKUP",
	} {
		resp, err := http.Post(server.URL+"/backup", "application/json", strings.NewReader(body))
		require.NoError(t, err)

		var apiErr mcp.APIError
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, code, apiErr.Code)
	}
	require.Len(t, svc.Load(context.Background()), 1)
}

func TestHTTPServer_Report(t *testing.T) {
	server, svc := newTestServer(t, Options{})
	ctx := context.Background()
	_, err := svc.Add(ctx, ledger.Fields{Name: "Ravi", Amount: "500"})
	require.NoError(t, err)
	c, err := svc.Add(ctx, ledger.Fields{Name: "Anna", Amount: "50"})
	require.NoError(t, err)
	require.NoError(t, svc.MarkPaid(ctx, c.ID))

	resp, err := http.Get(server.URL + "/report.xlsx?status=unpaid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue(export.Sheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "Ravi", name)
	next, err := f.GetCellValue(export.Sheet, "B3")
	require.NoError(t, err)
	require.Empty(t, next, "paid record filtered out")
	total, err := f.GetCellValue(export.Sheet, "E4")
	require.NoError(t, err)
	require.Equal(t, "500", total)

	resp2, err := http.Get(server.URL + "/report.xlsx?status=overdue")
	require.NoError(t, err)
	resp2.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestHTTPServer_OptionalMounts(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})
	server, _ := newTestServer(t, Options{Metrics: metrics})

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, "metrics", string(body))

	resp, err = http.Get(server.URL + "/mcp")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
