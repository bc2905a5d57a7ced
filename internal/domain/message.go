package domain

import "time"

// MaxMessageLength bounds a message body after trimming.
const MaxMessageLength = 2000

// Message is one entry in the append-only log of a thread, 1:1 or group.
// Messages are never edited or deleted.
type Message struct {
	ID           int64     `json:"id" db:"id"`
	ThreadID     string    `json:"thread_id" db:"thread_id"`
	SenderUserID string    `json:"sender_user_id" db:"sender_user_id"`
	Body         string    `json:"body" db:"body"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
