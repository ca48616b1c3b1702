package ledger

import (
	"context"
	"time"

	"github.com/rpggio/smartcredit/internal/domain/activity"
)

// Storage is a key-value slot store holding the serialized ledger.
type Storage interface {
	// Read returns the slot value and whether the slot exists.
	Read(ctx context.Context, key string) (string, bool, error)
	// Write replaces the slot value.
	Write(ctx context.Context, key, value string) error
}

// IDGenerator hands out time-derived, increasing record IDs.
type IDGenerator interface {
	NextID() int64
}

// ActivityRepository logs ledger mutations.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}

// Clock returns the current time. Tests pin it to a fixed date.
type Clock func() time.Time
