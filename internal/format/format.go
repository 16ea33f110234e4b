// Package format loads configuration documents from disk and writes them
// back. Loading tries an ordered list of parsers (YAML first, then strict
// JSON); writing dispatches on the output file extension and falls back to
// YAML for anything unrecognized.
package format

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veilhq/veil/internal/document"
)

// ErrUnrecognizedFormat means the input parsed as neither YAML nor JSON.
var ErrUnrecognizedFormat = errors.New("unrecognized format")

// Format names a concrete serialization.
type Format int

const (
	YAML Format = iota
	JSON
)

func (f Format) String() string {
	if f == JSON {
		return "json"
	}
	return "yaml"
}

// parsers are tried in order; the first success wins. YAML leads because it
// is a superset that also accepts most plain JSON, which makes the YAML
// result the documented precedence for ambiguous content, not an error.
var parsers = []struct {
	name  string
	parse func([]byte) (*document.Node, error)
}{
	{"yaml", document.ParseYAML},
	{"json", document.ParseJSON},
}

// Parse turns raw file content into a document tree. Parsing is
// all-or-nothing: any failure returns a nil tree.
func Parse(b []byte) (*document.Node, error) {
	var causes []string
	for _, p := range parsers {
		doc, err := p.parse(b)
		if err == nil {
			return doc, nil
		}
		causes = append(causes, fmt.Sprintf("%s: %v", p.name, err))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, strings.Join(causes, "; "))
}

// Load reads path and parses it into a document tree.
func Load(path string) (*document.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Detect picks the output format from the file extension. The second
// return is false when the extension is unrecognized; the caller should
// warn and use the returned YAML fallback.
func Detect(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, true
	case ".json":
		return JSON, true
	}
	return YAML, false
}

// Render serializes the tree in the given format with 2-space indentation,
// preserving key order and nesting.
func Render(doc *document.Node, f Format) ([]byte, error) {
	if f == JSON {
		return document.EncodeJSON(doc)
	}
	return document.EncodeYAML(doc)
}

// Write renders the tree and writes it to path. The write is not atomic:
// a failure mid-write can leave a partial file behind, which is an accepted
// gap for a tool that normally rewrites files it just read.
func Write(path string, doc *document.Node, f Format) error {
	b, err := Render(doc, f)
	if err != nil {
		return fmt.Errorf("render %s: %w", f, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
