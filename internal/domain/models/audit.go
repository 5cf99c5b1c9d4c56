package models

import "time"

// Audit action tags. Entries are append-only and immutable once written.
const (
	ActionAddedItem        = "added_item"
	ActionUpdatedStock     = "updated_stock"
	ActionFlaggedLow       = "flagged_low"
	ActionCreatedUser      = "created_user"
	ActionDeletedUser      = "deleted_user"
	ActionUpdatedPIN       = "updated_pin"
	ActionUploadedSchedule = "uploaded_schedule"
	ActionUpdatedBudget    = "updated_budget"
	ActionBudgetRollover   = "budget_rollover"
)

// AuditLogEntry records who did what to which item.
type AuditLogEntry struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	User      string    `bson:"user" json:"user"`
	Action    string    `bson:"action" json:"action"`
	Item      string    `bson:"item" json:"item"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
