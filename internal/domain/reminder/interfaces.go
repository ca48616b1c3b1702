package reminder

import (
	"context"

	"github.com/rpggio/smartcredit/internal/domain/activity"
)

// Clipboard receives the reminder text.
type Clipboard interface {
	WriteText(text string) error
}

// Opener hands a link to whatever can follow it (a browser on desktop).
type Opener interface {
	Open(ctx context.Context, link string) error
}

// ActivityRepository logs sent reminders.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
