// Package integrity provides infrastructure health checks.
//
// Unlike the stocktake feature, which reconciles inventory content, this
// package validates what the service needs to run.
//
// # Checks Provided
//
//   - Storage: the export bucket exists and carries the exports/ folder.
//   - Schema: every stock-take table exists with the columns of its model
//     (and the tools/issuances tables when the database registry is used).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check; ?fix=true is admin only.
//   - GET /integrity/schema : Runs the schema check.
package integrity
