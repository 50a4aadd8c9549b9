// Package cache connects to Redis, which holds short-lived operator feedback
// state (tools recently corrected in a session). Nothing authoritative lives
// in Redis; the database remains the system of record.
package cache
