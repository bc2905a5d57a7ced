package domain

import "time"

// Group is one of the seven fixed tribes, keyed by its category. Each group
// owns exactly one group thread, created when the group is seeded.
type Group struct {
	Key         Category  `json:"group_key" db:"group_key"`
	Label       string    `json:"group_label" db:"label"`
	Description string    `json:"group_description" db:"description"`
	ThreadID    string    `json:"group_thread_id" db:"thread_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// GroupMember attaches a participant to their current tribe. A participant
// belongs to at most one group; reassignment replaces the row rather than
// accumulating history.
type GroupMember struct {
	UserID     string    `json:"user_id" db:"user_id"`
	GroupKey   Category  `json:"group_key" db:"group_key"`
	Alias      string    `json:"alias" db:"alias"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
}
