package domain

import (
	"time"

	"github.com/lib/pq"
)

// ChatThread is a 1:1 channel between a mutual-top-3 pair. The pair is
// normalized (UserAID < UserBID) and unique, which is what makes concurrent
// get-or-create safe. Once created the thread is immutable except for
// RevealedAt and the AI-suggested icebreakers.
type ChatThread struct {
	ID          string         `json:"thread_id" db:"id"`
	UserAID     string         `json:"user_a_id" db:"user_a_id"`
	UserBID     string         `json:"user_b_id" db:"user_b_id"`
	AliasA      string         `json:"alias_a" db:"alias_a"`
	AliasB      string         `json:"alias_b" db:"alias_b"`
	Icebreakers pq.StringArray `json:"icebreakers" db:"icebreakers"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	RevealedAt  *time.Time     `json:"revealed_at" db:"revealed_at"`
}

func (t *ChatThread) HasUser(userID string) bool {
	return t.UserAID == userID || t.UserBID == userID
}

func (t *ChatThread) OtherUser(userID string) (string, bool) {
	if t.UserAID == userID {
		return t.UserBID, true
	}
	if t.UserBID == userID {
		return t.UserAID, true
	}
	return "", false
}

// AliasOf returns the stored alias for a thread member.
func (t *ChatThread) AliasOf(userID string) string {
	if t.UserAID == userID {
		return t.AliasA
	}
	if t.UserBID == userID {
		return t.AliasB
	}
	return ""
}

// ThreadWithLastMessage is a ChatThread joined with its most recent message,
// used for thread list summaries.
type ThreadWithLastMessage struct {
	ChatThread
	LastMessageAt      *time.Time `db:"last_message_at"`
	LastMessagePreview *string    `db:"last_message_preview"`
}
