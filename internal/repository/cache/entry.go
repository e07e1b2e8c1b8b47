package cache

import "time"

// ContextEntry is one user's cached general context.
type ContextEntry struct {
	UserId      string    `json:"user_id"`
	ContextText string    `json:"context_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clock is swapped out in tests to move time without sleeping.
type Clock func() time.Time

// fresh reports whether the entry is still younger than ttl at now.
func (e ContextEntry) fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) < ttl
}
