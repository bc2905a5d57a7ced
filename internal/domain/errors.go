package domain

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrThreadNotFound      = errors.New("thread not found")
	ErrNotMutualTop3       = errors.New("pair is not currently mutual top-3 eligible for chat")
	ErrThreadNotAccessible = errors.New("thread not accessible")
	ErrNotInGroup          = errors.New("no group assigned")
	ErrInvalidRequest      = errors.New("invalid request")
)

// Error codes surfaced to callers. Anything unclassified maps to CodeUnknown
// and is logged server-side without leaking detail.
const (
	CodeNotMutualTop3       = "NOT_MUTUAL_TOP3"
	CodeThreadNotAccessible = "THREAD_NOT_ACCESSIBLE"
	CodeNotInGroup          = "NOT_IN_GROUP"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnknown             = "UNKNOWN"
)
