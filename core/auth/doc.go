// Package auth supplies the authorization context consumed by the stock-take engine.
//
// An Actor carries the caller identity and role. Feature packages receive the
// Actor explicitly and gate privileged operations with RequireAdmin; the HTTP
// layer builds the Actor from a signed JWT bearer token (see Issue and Parse).
package auth
