// Package apperror defines the error taxonomy shared by the stock-take engine.
//
// Every failure surfaced by a feature package wraps one of the sentinel errors
// below, so callers classify outcomes with errors.Is and never by message.
//
// # Taxonomy
//
//   - ErrNotFound: a code, session, tool or correction does not exist.
//   - ErrSessionNotActive / ErrInvalidTransition: lifecycle precondition violated.
//   - ErrPreconditionFailed: state forbids the operation (ErrNoOpCorrection is one case).
//   - ErrUnauthorized: the actor lacks the required role.
//   - ErrStorageConflict: write contention persisted after bounded retries.
//   - ErrInvalidInput: malformed request values.
//
// OpError attaches the operation name and the session/tool involved so the
// caller can decide whether to retry.
package apperror
