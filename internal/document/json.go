package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseJSON strictly decodes b as a single JSON document, preserving mapping
// key order. encoding/json's map decoding would lose order, so the tree is
// built from the decoder's token stream instead.
func ParseJSON(b []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, errEmptyDocument
	}
	if err != nil {
		return nil, err
	}
	n, err := fromJSON(dec, tok, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing content after JSON document")
	}
	return n, nil
}

func fromJSON(dec *json.Decoder, tok json.Token, depth int) (*Node, error) {
	if depth > maxDepth {
		return nil, errors.New("document nested too deeply")
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := &Node{Kind: Mapping}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, want string", kt)
				}
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := fromJSON(dec, vt, depth+1)
				if err != nil {
					return nil, err
				}
				n.Pairs = append(n.Pairs, Pair{Key: key, Value: v})
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return n, nil
		case '[':
			n := &Node{Kind: Sequence}
			for dec.More() {
				et, err := dec.Token()
				if err != nil {
					return nil, err
				}
				v, err := fromJSON(dec, et, depth+1)
				if err != nil {
					return nil, err
				}
				n.Items = append(n.Items, v)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return n, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return String(t), nil
	case json.Number:
		tag := TagInt
		if strings.ContainsAny(t.String(), ".eE") {
			tag = TagFloat
		}
		return &Node{Kind: Scalar, Value: t.String(), Tag: tag}, nil
	case bool:
		return &Node{Kind: Scalar, Value: strconv.FormatBool(t), Tag: TagBool}, nil
	case nil:
		return &Node{Kind: Scalar, Value: "null", Tag: TagNull}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// EncodeJSON serializes the tree as JSON with 2-space indentation and
// mapping keys in source order.
func EncodeJSON(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *Node, depth int) error {
	switch n.Kind {
	case Mapping:
		if len(n.Pairs) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, p := range n.Pairs {
			writeIndent(buf, depth+1)
			buf.WriteString(quoteJSON(p.Key))
			buf.WriteString(": ")
			if err := writeJSON(buf, p.Value, depth+1); err != nil {
				return err
			}
			if i < len(n.Pairs)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
		return nil
	case Sequence:
		if len(n.Items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, it := range n.Items {
			writeIndent(buf, depth+1)
			if err := writeJSON(buf, it, depth+1); err != nil {
				return err
			}
			if i < len(n.Items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
		return nil
	case Scalar:
		buf.WriteString(scalarJSON(n))
		return nil
	}
	return fmt.Errorf("unsupported node kind %d", n.Kind)
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

// scalarJSON renders a scalar for JSON output. YAML admits number and bool
// spellings JSON does not (0x1f, .inf, yes/off), so values that cannot be
// represented as JSON primitives fall back to quoted strings.
func scalarJSON(n *Node) string {
	switch n.Tag {
	case TagNull:
		return "null"
	case TagBool:
		switch strings.ToLower(n.Value) {
		case "true", "yes", "on", "y":
			return "true"
		default:
			return "false"
		}
	case TagInt:
		if v, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return strconv.FormatInt(v, 10)
		}
	case TagFloat:
		if v, err := strconv.ParseFloat(n.Value, 64); err == nil {
			if !math.IsInf(v, 0) && !math.IsNaN(v) {
				// Re-marshal to keep a canonical JSON number form.
				b, _ := json.Marshal(v)
				return string(b)
			}
		}
	}
	return quoteJSON(n.Value)
}

// quoteJSON escapes a string for JSON output. json.Marshal would additionally
// HTML-escape <, > and &, turning "<REDACTED>" into "<REDACTED>";
// an Encoder with HTML escaping off keeps the output human-readable.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Encoding a string cannot fail; invalid UTF-8 is replaced.
		b, _ := json.Marshal(s)
		return string(b)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
