// Package resolver maps scanned codes to tools.
//
// A code is trimmed and lowercased, then offered to an ordered chain of
// matchers: exact SKU, barcode, QR payload and inventory number, and finally
// a substring match on name or serial number. The first matcher with any
// candidate wins; when it has several, the first in registry order is used
// and the result is flagged Ambiguous.
package resolver
