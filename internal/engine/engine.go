package engine

import (
	"github.com/veilhq/veil/internal/document"
	"github.com/veilhq/veil/internal/rules"
)

// DefaultPlaceholder replaces redacted values when no placeholder is
// configured.
const DefaultPlaceholder = "<REDACTED>"

// Config controls a redaction run. The zero value redacts with the default
// rule set and placeholder.
type Config struct {
	Placeholder string
	Rules       rules.Set
}

func (c Config) placeholder() string {
	if c.Placeholder == "" {
		return DefaultPlaceholder
	}
	return c.Placeholder
}

func (c Config) rules() rules.Set {
	if c.Rules == nil {
		return rules.DefaultSet()
	}
	return c.Rules
}

// Result is the outcome of one redaction run.
type Result struct {
	Document *document.Node
	Redacted int // number of values replaced
}

// Redact returns a new tree with sensitive values replaced. The input tree
// is never mutated. The output is structurally isomorphic to the input:
// same keys, same sequence lengths, same nesting; only matched values are
// swapped for the placeholder.
func Redact(doc *document.Node, cfg Config) Result {
	cfg = Config{Placeholder: cfg.placeholder(), Rules: cfg.rules()}
	res := Result{}
	res.Document = redactValue(doc, cfg, &res.Redacted)
	return res
}

// redactMapping applies the key rules to every entry. A key match replaces
// the entire value, whatever its shape, without descending into it; the
// value's own content is not consulted. Non-matching entries fall through
// to the value rules.
func redactMapping(n *document.Node, cfg Config, count *int) *document.Node {
	out := &document.Node{Kind: document.Mapping, Pairs: make([]document.Pair, 0, len(n.Pairs))}
	for _, p := range n.Pairs {
		if _, ok := cfg.Rules.Match(p.Key); ok {
			*count++
			out.Pairs = append(out.Pairs, document.Pair{Key: p.Key, Value: document.String(cfg.Placeholder)})
			continue
		}
		out.Pairs = append(out.Pairs, document.Pair{Key: p.Key, Value: redactValue(p.Value, cfg, count)})
	}
	return out
}

// redactValue processes a node in value position: mappings and sequences
// recurse, string scalars are checked against the rules by their own text,
// every other scalar passes through untouched.
func redactValue(n *document.Node, cfg Config, count *int) *document.Node {
	switch n.Kind {
	case document.Mapping:
		return redactMapping(n, cfg, count)
	case document.Sequence:
		out := &document.Node{Kind: document.Sequence, Items: make([]*document.Node, 0, len(n.Items))}
		for _, it := range n.Items {
			out.Items = append(out.Items, redactValue(it, cfg, count))
		}
		return out
	default:
		if n.IsString() {
			if _, ok := cfg.Rules.Match(n.Value); ok {
				*count++
				return document.String(cfg.Placeholder)
			}
		}
		cp := *n
		return &cp
	}
}
