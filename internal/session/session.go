package session

import "time"

// State is the validity state of a session.
type State int

const (
	StateUnknown State = iota
	StateValid
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Session is an opaque credential pair authorizing API requests.
// Cookie is a full Cookie header value; Crumb is the anti-forgery token
// that must accompany it.
type Session struct {
	Cookie     string
	Crumb      string
	AcquiredAt time.Time
	State      State

	// id distinguishes successive sessions so a stale handle cannot
	// invalidate a newer session.
	id uint64
}
