package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"propmeta/internal/view"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json" or "yaml" in any case.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json or yaml)", value)
	}
}

// Extension returns the file extension for documents in f.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// BlobFunc renders the blob found at path, the chain of keys from the
// document root.
type BlobFunc func(path []string, r io.Reader) (string, error)

// UnlabeledBlob is rendered for blobs whose reader carries no name.
const UnlabeledBlob = "<bytes>"

// BlobLabel renders a blob by its reader's String method, falling back to
// UnlabeledBlob. The stream is not consumed.
func BlobLabel(_ []string, r io.Reader) (string, error) {
	if s, ok := r.(fmt.Stringer); ok {
		return s.String(), nil
	}
	return UnlabeledBlob, nil
}

// Encoder renders views in one format.
type Encoder struct {
	format Format
	blob   BlobFunc
}

// NewEncoder returns an encoder. A nil blob func uses BlobLabel.
func NewEncoder(format Format, blob BlobFunc) *Encoder {
	if blob == nil {
		blob = BlobLabel
	}
	if format == "" {
		format = FormatJSON
	}
	return &Encoder{format: format, blob: blob}
}

// Format reports the encoder's output format.
func (e *Encoder) Format() Format {
	return e.format
}

// Encode renders doc. Output ends with a newline.
func (e *Encoder) Encode(doc *view.View) ([]byte, error) {
	tree, err := e.tree(doc, nil)
	if err != nil {
		return nil, err
	}
	switch e.format {
	case FormatYAML:
		return encodeYAML(tree)
	default:
		return encodeJSON(tree)
	}
}

// node is a view with blobs already rendered. Values are string or *node.
type node struct {
	keys   []string
	values []any
}

func (e *Encoder) tree(v *view.View, path []string) (*node, error) {
	n := &node{keys: v.Keys(), values: make([]any, 0, v.Size())}
	for i, key := range n.keys {
		value, _ := v.ValueAt(i)
		child := append(append([]string(nil), path...), key)
		switch value.Kind() {
		case view.KindString:
			s, _ := value.Text()
			n.values = append(n.values, s)
		case view.KindBlob:
			r, _ := value.Blob()
			label, err := e.blob(child, r)
			if err != nil {
				return nil, fmt.Errorf("render blob %s: %w", strings.Join(child, "."), err)
			}
			n.values = append(n.values, label)
		case view.KindView:
			sub, _ := value.View()
			subNode, err := e.tree(sub, child)
			if err != nil {
				return nil, err
			}
			n.values = append(n.values, subNode)
		}
	}
	return n, nil
}

// writeJSON writes the object with its keys in view order. Strings are not
// HTML-escaped so labels such as <bytes> stay readable.
func (n *node) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, key := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		switch v := n.values[i].(type) {
		case *node:
			if err := v.writeJSON(buf); err != nil {
				return err
			}
		case string:
			if err := writeJSONString(buf, v); err != nil {
				return err
			}
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	data, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func encodeJSON(tree *node) ([]byte, error) {
	var compact bytes.Buffer
	if err := tree.writeJSON(&compact); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func (n *node) yamlNode() *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, key := range n.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		var valueNode *yaml.Node
		switch v := n.values[i].(type) {
		case *node:
			valueNode = v.yamlNode()
		case string:
			valueNode = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
		}
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}
	return mapping
}

func encodeYAML(tree *node) ([]byte, error) {
	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(tree.yamlNode()); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return out.Bytes(), nil
}
