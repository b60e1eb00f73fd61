package model

import "time"

// Session is the server-side half of a password login. Only ID reaches the
// client (inside a signed cookie); Identity is trusted verbatim on restore.
type Session struct {
	ID        string
	Identity  Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
