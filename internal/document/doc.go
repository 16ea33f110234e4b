// Package document defines the generic in-memory tree for YAML and JSON
// configuration files: mappings, sequences, and scalars with explicit kind
// discrimination. Both codecs preserve mapping key order so a rewritten file
// diffs cleanly against its source. This package is internal; the scrubbing
// pipeline lives in internal/engine and internal/format.
package document
