// Package core provides a small, stable facade over Veil's internal
// pipeline for external integrations. It deliberately re-exports a narrow
// API surface so other tools can depend on a stable import path without
// reaching into internal implementation packages.
//
// Example:
//
//	res, err := core.Scrub(core.Options{Input: "config.yaml"})
//	if err != nil { /* handle */ }
//	fmt.Printf("redacted %d values\n", res.Redacted)
package core
