// Package models defines the persisted entities of the stock-take service:
// sessions, count records, corrections and settings, plus the Tool and
// Issuance rows of the database-backed tool registry.
package models
