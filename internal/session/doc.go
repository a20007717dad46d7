// Package session owns the cookie+crumb credential pair required by the
// quote API.
//
// The Store holds at most one Session and is the only place session state
// changes: acquisition produces a Valid session, Invalidate marks it
// Expired, and expired sessions are replaced on the next GetValid call.
// Concurrent callers share a single in-flight acquisition.
package session
