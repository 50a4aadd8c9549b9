// Package differences exposes the difference view of a session: counted
// quantity against the registry quantity for every counted tool, and
// optionally for every uncounted one.
//
// The view is recomputed on each call. The system quantity is either the
// on-hand quantity or the quantity not issued to employees, depending on
// the configured counting mode.
package differences
