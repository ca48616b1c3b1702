package activity

import "time"

// ActivityType represents the kind of ledger change
type ActivityType string

const (
	TypeRecordAdded    ActivityType = "record_added"
	TypeRecordUpdated  ActivityType = "record_updated"
	TypeMarkedPaid     ActivityType = "marked_paid"
	TypeRecordDeleted  ActivityType = "record_deleted"
	TypePaidPruned     ActivityType = "paid_pruned"
	TypeBackupRestored ActivityType = "backup_restored"
	TypeReminderSent   ActivityType = "reminder_sent"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	RecordID     *int64       `json:"record_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
