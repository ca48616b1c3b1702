package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/smartcredit/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	recordID := int64(7)
	entry1 := &activity.ActivityEntry{
		RecordID:     &recordID,
		ActivityType: activity.TypeRecordAdded,
		Summary:      "added Ravi for 500",
		CreatedAt:    base,
	}
	entry2 := &activity.ActivityEntry{
		ActivityType: activity.TypePaidPruned,
		Summary:      "removed 2 paid records",
		CreatedAt:    base.Add(time.Minute),
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)
	require.Greater(t, entry2.ID, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypePaidPruned, entries[0].ActivityType)
	require.Nil(t, entries[0].RecordID)
	require.Equal(t, activity.TypeRecordAdded, entries[1].ActivityType)
	require.NotNil(t, entries[1].RecordID)
	require.Equal(t, recordID, *entries[1].RecordID)
	require.True(t, base.Equal(entries[1].CreatedAt))
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	r1, r2 := int64(1), int64(2)
	for i, e := range []*activity.ActivityEntry{
		{RecordID: &r1, ActivityType: activity.TypeRecordAdded, Summary: "a"},
		{RecordID: &r1, ActivityType: activity.TypeMarkedPaid, Summary: "b"},
		{RecordID: &r2, ActivityType: activity.TypeRecordAdded, Summary: "c"},
	} {
		e.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Log(ctx, e))
	}

	entries, err := repo.List(ctx, activity.ListActivityOptions{RecordID: &r1})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	added := activity.TypeRecordAdded
	entries, err = repo.List(ctx, activity.ListActivityOptions{ActivityType: &added})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	since := base.Add(90 * time.Minute)
	entries, err = repo.List(ctx, activity.ListActivityOptions{Since: &since})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "c", entries[0].Summary)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "b", entries[0].Summary)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Offset: 2})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a", entries[0].Summary)
}

func TestActivityRepository_EmptyList(t *testing.T) {
	repo := NewActivityRepository(NewTestDB(t))

	entries, err := repo.List(context.Background(), activity.ListActivityOptions{})
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
