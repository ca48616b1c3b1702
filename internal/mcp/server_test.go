package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/rpggio/smartcredit/internal/domain/reminder"
	"github.com/stretchr/testify/require"
)

func connectClient(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	storage := &memStorage{slots: map[string]string{}}
	server := NewServer(Config{Services: Services{
		Ledger:    ledger.NewService(storage, &seqIDs{}, nil, nil),
		Reminders: reminder.NewService(nil, nil, nil, nil),
	}})

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func callText(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text, result.IsError
}

func TestServer_ListsTools(t *testing.T) {
	session := connectClient(t)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make(map[string]bool, len(tools.Tools))
	for _, tool := range tools.Tools {
		names[tool.Name] = true
		require.NotEmpty(t, tool.Description)
	}
	for _, def := range buildToolCatalog() {
		require.True(t, names[def.Name], "missing tool %s", def.Name)
	}
}

func TestServer_CallTools(t *testing.T) {
	session := connectClient(t)

	text, isErr := callText(t, session, "add_record", map[string]any{"name": "Ravi", "amount": "500", "phone": "9876543210"})
	require.False(t, isErr, text)
	var added ledger.Customer
	require.NoError(t, json.Unmarshal([]byte(text), &added))
	require.Equal(t, "Ravi", added.Name)

	text, isErr = callText(t, session, "get_summary", nil)
	require.False(t, isErr, text)
	require.JSONEq(t, `{"total":1,"paid":0,"unpaid":1,"pending_total":"500.00"}`, text)

	text, isErr = callText(t, session, "add_record", map[string]any{"name": "  "})
	require.True(t, isErr)
	var apiErr APIError
	require.NoError(t, json.Unmarshal([]byte(text), &apiErr))
	require.Equal(t, "INVALID_INPUT", apiErr.Code)
}

func TestServer_DocResources(t *testing.T) {
	session := connectClient(t)
	ctx := context.Background()

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resources.Resources, len(docResources))
	for _, r := range resources.Resources {
		require.Equal(t, "text/markdown", r.MIMEType)
		require.Greater(t, r.Size, int64(0))
	}

	read, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "smartcredit://docs/index"})
	require.NoError(t, err)
	require.NotEmpty(t, read.Contents)
	require.Contains(t, read.Contents[0].Text, "Agent Docs Index")
}
