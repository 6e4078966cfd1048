package seo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StructuredData is an opaque schema.org JSON-LD object. It is written to
// the page exactly as authored, keys in document order.
type StructuredData json.RawMessage

func (d *StructuredData) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: structured data must be a mapping", value.Line)
	}
	var buf bytes.Buffer
	if err := writeNode(&buf, value); err != nil {
		return fmt.Errorf("line %d: structured data: %w", value.Line, err)
	}
	*d = buf.Bytes()
	return nil
}

func writeNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, n.Content[0])
	case yaml.AliasNode:
		return writeNode(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.Write(b)
	}
	return nil
}

func (d StructuredData) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *StructuredData) UnmarshalJSON(b []byte) error {
	if !json.Valid(b) {
		return fmt.Errorf("structured data is not valid JSON")
	}
	*d = append((*d)[:0], b...)
	return nil
}

// Type returns the schema.org @type, or "" when absent.
func (d StructuredData) Type() string {
	var head struct {
		Type string `json:"@type"`
	}
	if err := json.Unmarshal(d, &head); err != nil {
		return ""
	}
	return head.Type
}

// Script renders the block for a <script type="application/ld+json"> tag.
// "</" is escaped so the JSON cannot close the script element.
func (d StructuredData) Script() string {
	return string(bytes.ReplaceAll(d, []byte("</"), []byte(`<\/`)))
}
