// Package correction implements the governed path from a counted difference
// to a change of the tool registry: propose, accept, delete.
//
// Anyone authenticated may propose; only admins accept or delete. Accepting
// claims the correction with a conditional update and adjusts the registry
// quantity in the same transaction, so a correction is applied at most once
// and a registry failure leaves it pending. Auto-accept is an explicit
// Options value read from settings by the caller.
package correction
