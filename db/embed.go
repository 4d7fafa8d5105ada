// Package db provides the embedded PostgreSQL schema.
package db

import _ "embed"

// Schema creates the document tables backing the administrators and orders
// collections.
//
//go:embed migrations/001_schema.sql
var Schema string
