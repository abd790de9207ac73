package cache

import "time"

// entry is a stored payload. The key is kept so a file cache can tell a
// hash collision from a hit.
type entry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func newEntry(key string, data []byte, ttl time.Duration) entry {
	e := entry{Key: key, Data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	return e
}

func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}
