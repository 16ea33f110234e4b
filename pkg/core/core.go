package core

import (
	"github.com/veilhq/veil/internal/engine"
	"github.com/veilhq/veil/internal/format"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Format = format.Format

const (
	YAML = format.YAML
	JSON = format.JSON
)

// ErrUnrecognizedFormat is returned when the input is neither valid YAML
// nor valid JSON.
var ErrUnrecognizedFormat = format.ErrUnrecognizedFormat

// Options configures a single scrub run.
type Options struct {
	// Input is the path of the file to scrub. Required.
	Input string
	// Output is the destination path. Empty means rewrite Input in place.
	Output string
	// Placeholder replaces redacted values. Empty means "<REDACTED>".
	Placeholder string
}

// Result reports what a scrub run did.
type Result struct {
	// Redacted is the number of values replaced by the placeholder.
	Redacted int
	// Format is the serialization chosen for the output file.
	Format Format
	// FormatFallback is true when the output extension was unrecognized
	// and YAML was used as the documented fallback.
	FormatFallback bool
}

// Scrub is the stable entrypoint for other programs: it loads Input,
// redacts sensitive values, and writes the result to Output. Either the
// whole pipeline succeeds or no result is reported; there is no partial
// success.
func Scrub(opts Options) (Result, error) {
	out := opts.Output
	if out == "" {
		out = opts.Input
	}
	doc, err := format.Load(opts.Input)
	if err != nil {
		return Result{}, err
	}
	res := engine.Redact(doc, engine.Config{Placeholder: opts.Placeholder})
	f, known := format.Detect(out)
	if err := format.Write(out, res.Document, f); err != nil {
		return Result{}, err
	}
	return Result{Redacted: res.Redacted, Format: f, FormatFallback: !known}, nil
}
