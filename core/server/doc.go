// Package server holds the HTTP server configuration and engine policy constants.
//
// Besides the listening port it carries the two installation-wide policies the
// stock-take engine needs at call time: the counting mode (which registry
// quantity a physical count is compared against) and the CSV export delimiter.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/start when wiring the
// stocktake feature.
package server
