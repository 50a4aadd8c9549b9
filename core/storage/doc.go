// Package storage wraps the S3-compatible object store (MinIO) used to archive
// exported stock-take reports.
//
// The Client interface exposes only the operations the service needs, which
// keeps it mockable (see the mocks subpackage). EnsureBucket prepares the
// export bucket at startup.
package storage
