package domain

import (
	"fmt"
	"hash/fnv"
)

// ThreadAlias derives the pseudonym shown for a participant inside a given
// thread while reveal is disabled. It is deterministic on (threadID, userID)
// so the same member always reads back the same alias, including for group
// messages sent before a member moved to another tribe.
func ThreadAlias(threadID, userID string) string {
	h := fnv.New32a()
	h.Write([]byte(threadID))
	h.Write([]byte(":"))
	h.Write([]byte(userID))
	return fmt.Sprintf("Cupido #%04X", h.Sum32()&0xFFFF)
}
