// Package utils provides loose-type conversion helpers used at system
// boundaries, chiefly when normalizing JSON payloads of the external tool
// registry whose numeric fields may arrive as numbers, strings or decimals.
package utils
