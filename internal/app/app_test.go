package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/smartcredit/internal/config"
	"github.com/rpggio/smartcredit/internal/domain/activity"
	"github.com/rpggio/smartcredit/internal/domain/ledger"
	"github.com/stretchr/testify/require"
)

func TestNew_PersistsAcrossRestarts(t *testing.T) {
	cfg := config.Default()
	cfg.DB.Path = filepath.Join(t.TempDir(), "data", "ledger.db")
	ctx := context.Background()

	a, err := New(cfg, nil)
	require.NoError(t, err)
	added, err := a.Ledger.Add(ctx, ledger.Fields{Name: "Ravi", Phone: "9876543210", Amount: "500"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	a, err = New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	records := a.Ledger.Load(ctx)
	require.Len(t, records, 1)
	require.Equal(t, added.ID, records[0].ID)

	entries, err := a.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activity.TypeRecordAdded, entries[0].ActivityType)
}

func TestNew_SlotKeyAndClock(t *testing.T) {
	cfg := config.Default()
	cfg.DB.Path = ":memory:"
	cfg.Ledger.SlotKey = "otherShop"
	day := time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)

	a, err := New(cfg, nil, WithClock(func() time.Time { return day }))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	c, err := a.Ledger.Add(context.Background(), ledger.Fields{Name: "Anna", Amount: "50"})
	require.NoError(t, err)
	require.Equal(t, "2024-03-05", c.Date)
	require.Equal(t, "otherShop", a.Ledger.SlotKey())

	var n int
	err = a.DB.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM slots WHERE key = ?`, "otherShop").Scan(&n)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNew_InvalidNode(t *testing.T) {
	cfg := config.Default()
	cfg.DB.Path = ":memory:"
	cfg.Ledger.NodeID = 5000

	_, err := New(cfg, nil)
	require.Error(t, err)
}

func TestNew_RemindersLogThroughActivityService(t *testing.T) {
	cfg := config.Default()
	cfg.DB.Path = ":memory:"
	ctx := context.Background()

	a, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	c, err := a.Ledger.Add(ctx, ledger.Fields{Name: "Ravi", Phone: "9876543210", Amount: "500"})
	require.NoError(t, err)
	_, err = a.Reminders.Send(ctx, *c)
	require.NoError(t, err)

	entries, err := a.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{RecordID: &c.ID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	types := []activity.ActivityType{entries[0].ActivityType, entries[1].ActivityType}
	require.ElementsMatch(t, []activity.ActivityType{activity.TypeRecordAdded, activity.TypeReminderSent}, types)
	for _, e := range entries {
		require.False(t, e.CreatedAt.IsZero())
	}
}
