package domain

import "time"

// Challenge is a pending step-up verification for one username.
type Challenge struct {
	ID        string
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the challenge is no longer usable at now.
func (c *Challenge) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
