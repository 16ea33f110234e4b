package document

import (
	"bytes"
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// Kind discriminates the three node shapes a configuration tree can hold.
type Kind uint8

const (
	Mapping Kind = iota + 1
	Sequence
	Scalar
)

// Scalar tags follow the yaml.v3 short-tag convention so scalar types
// (string vs int vs bool vs null) survive a load/rewrite round-trip.
const (
	TagStr   = "!!str"
	TagInt   = "!!int"
	TagFloat = "!!float"
	TagBool  = "!!bool"
	TagNull  = "!!null"
)

// maxDepth bounds recursion so hostile alias chains or absurdly nested
// input cannot blow the stack.
const maxDepth = 1000

// Pair is one key/value entry of a mapping. Keys are plain strings.
type Pair struct {
	Key   string
	Value *Node
}

// Node is one node of the document tree. Exactly one of Pairs, Items, or
// Value/Tag is meaningful, selected by Kind.
type Node struct {
	Kind  Kind
	Pairs []Pair  // Mapping entries, in source order
	Items []*Node // Sequence elements, in source order
	Value string  // Scalar text
	Tag   string  // Scalar resolver tag (TagStr, TagInt, ...)
}

// String returns a new string scalar node.
func String(s string) *Node {
	return &Node{Kind: Scalar, Value: s, Tag: TagStr}
}

// IsString reports whether n is a string scalar.
func (n *Node) IsString() bool {
	return n != nil && n.Kind == Scalar && n.Tag == TagStr
}

var errEmptyDocument = errors.New("empty document")

// ParseYAML decodes b as a single YAML document. YAML is a superset of JSON,
// so plain JSON content also parses here. An empty or null document is an
// error: the caller wants a tree to redact, not nothing.
func ParseYAML(b []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, errEmptyDocument
	}
	n, err := fromYAML(root.Content[0], 0)
	if err != nil {
		return nil, err
	}
	if n.Kind == Scalar && n.Tag == TagNull {
		return nil, errEmptyDocument
	}
	return n, nil
}

// fromYAML converts a decoded yaml.Node subtree. Aliases are expanded into
// independent copies so the resulting tree has single ownership everywhere;
// redacting one occurrence must never mutate another.
func fromYAML(y *yaml.Node, depth int) (*Node, error) {
	if depth > maxDepth {
		return nil, errors.New("document nested too deeply")
	}
	switch y.Kind {
	case yaml.AliasNode:
		return fromYAML(y.Alias, depth+1)
	case yaml.MappingNode:
		n := &Node{Kind: Mapping, Pairs: make([]Pair, 0, len(y.Content)/2)}
		for i := 0; i+1 < len(y.Content); i += 2 {
			v, err := fromYAML(y.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			n.Pairs = append(n.Pairs, Pair{Key: y.Content[i].Value, Value: v})
		}
		return n, nil
	case yaml.SequenceNode:
		n := &Node{Kind: Sequence, Items: make([]*Node, 0, len(y.Content))}
		for _, c := range y.Content {
			v, err := fromYAML(c, depth+1)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, v)
		}
		return n, nil
	case yaml.ScalarNode:
		tag := y.ShortTag()
		val := y.Value
		if tag == TagNull {
			// Normalize the many YAML null spellings (~, empty, Null) so
			// rewrites are stable.
			val = "null"
		}
		return &Node{Kind: Scalar, Value: val, Tag: tag}, nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d", y.Kind)
}

// toYAML builds the yaml.Node subtree for encoding. Scalars carry their
// resolver tag so the encoder quotes strings that would otherwise re-resolve
// as bools or numbers.
func (n *Node) toYAML() *yaml.Node {
	switch n.Kind {
	case Mapping:
		y := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range n.Pairs {
			k := &yaml.Node{Kind: yaml.ScalarNode, Tag: TagStr, Value: p.Key}
			y.Content = append(y.Content, k, p.Value.toYAML())
		}
		return y
	case Sequence:
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range n.Items {
			y.Content = append(y.Content, it.toYAML())
		}
		return y
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: n.Tag, Value: n.Value}
	}
}

// EncodeYAML serializes the tree as YAML with 2-space indentation.
func EncodeYAML(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n.toYAML()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
