// Package export serializes a difference view to CSV and archives exports in
// object storage.
//
// The CSV is a plain rendering of the rows it is given, in the given order:
// no filtering or recomputation happens here. Quoting follows RFC 4180 via
// encoding/csv; the delimiter is ';' by default or ','.
package export
