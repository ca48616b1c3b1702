package repository

import (
	"context"

	"github.com/rpggio/smartcredit/internal/domain/activity"
)

// SlotRepository persists named string values.
type SlotRepository interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	activity.Repository
}
