package domain

import "time"

// MatchEdge stores the persisted compatibility state for an unordered pair.
// The pair is normalized so that UserAID < UserBID, matching the database
// constraint. MutualTop3 is the sole gate for opening a 1:1 thread; it is
// recomputed whenever either side's vector, gender or preference changes and
// can flip in both directions without notice.
type MatchEdge struct {
	UserAID    string    `json:"user_a_id" db:"user_a_id"`
	UserBID    string    `json:"user_b_id" db:"user_b_id"`
	Score      int       `json:"score" db:"score"`
	AInBTop3   bool      `json:"a_in_b_top3" db:"a_in_b_top3"`
	BInATop3   bool      `json:"b_in_a_top3" db:"b_in_a_top3"`
	MutualTop3 bool      `json:"mutual_top3" db:"mutual_top3"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NormalizePair orders two user ids so the smaller one comes first.
func NormalizePair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (e *MatchEdge) HasUser(userID string) bool {
	return e.UserAID == userID || e.UserBID == userID
}

func (e *MatchEdge) OtherUser(userID string) (string, bool) {
	if e.UserAID == userID {
		return e.UserBID, true
	}
	if e.UserBID == userID {
		return e.UserAID, true
	}
	return "", false
}
