package domain

import "time"

const (
	SessionTTL    = 30 * time.Minute
	SweepInterval = 5 * time.Minute
)

type SessionRecord struct {
	Key        ConversationKey
	TargetName string
	CreatedAt  time.Time
}

func (r SessionRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}

// Expired reports whether the record is strictly older than ttl.
func (r SessionRecord) Expired(now time.Time, ttl time.Duration) bool {
	return r.Age(now) > ttl
}
