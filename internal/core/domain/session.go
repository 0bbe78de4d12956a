package domain

import "time"

// SessionLifetime is the fixed window a session stays valid after login.
// Expiry is evaluated lazily against wall-clock time, never by a timer.
const SessionLifetime = time.Hour

// Session is the durable snapshot of an authenticated identity. It is written
// at login and re-validated against the lifetime window whenever it is
// reconstructed from storage.
type Session struct {
	User      User      `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// Expired reports whether the session has outlived its lifetime as of now.
func (s Session) Expired(now time.Time) bool {
	if s.Timestamp.IsZero() {
		return true
	}
	return now.Sub(s.Timestamp) >= SessionLifetime
}
