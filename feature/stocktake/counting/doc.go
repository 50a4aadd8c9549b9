// Package counting ingests scans and manual counts into a session.
//
// A scan is validated (authenticated actor, positive quantity, active
// session) before the code is resolved, so a bad request never costs a
// registry round trip. The count itself is incremented atomically by the
// store; no count is cached here.
package counting
