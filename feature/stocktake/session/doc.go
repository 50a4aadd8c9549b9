// Package session manages inventory sessions: creation, the
// active/paused/ended lifecycle and deletion of ended sessions.
//
// Lifecycle changes are admin operations. The transition table lives in
// Next; the store applies it with a conditional update so two admins racing
// on the same session cannot both succeed from a stale status.
package session
