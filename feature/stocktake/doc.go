// Package stocktake is the HTTP feature of the stock-take service.
//
// It wires sessions, counting, differences, corrections and export into one
// Service and exposes them under /sessions, /corrections, /settings and
// /resolve. Every route expects an authenticated actor in the request
// locals (see core/middleware/auth); role checks happen in the services so
// the CLI and HTTP paths enforce the same rules.
//
// Errors are returned as {"error": "..."} with the status from
// apperror.HTTPStatus.
package stocktake
