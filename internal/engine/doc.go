// Package engine contains the core redaction logic for Veil. It walks a
// document tree and returns a new tree with values under sensitive-looking
// keys, and sensitive-looking string values, replaced by a placeholder.
// This package is internal; external consumers should use the stable facade
// in pkg/core.
package engine
