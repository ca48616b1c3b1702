// Package testserver runs the full HTTP stack over an in-memory database.
package testserver

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/smartcredit/internal/app"
	"github.com/rpggio/smartcredit/internal/config"
	"github.com/stretchr/testify/require"
)

// Today is the date the test server's ledger treats as today.
var Today = time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
}

func New(t *testing.T) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Path = ":memory:"

	a, err := app.New(cfg, nil, app.WithClock(func() time.Time { return Today }))
	require.NoError(t, err)

	server := httptest.NewServer(a.HTTPHandler())

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{Server: server, App: a}
}
