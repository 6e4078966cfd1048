package content

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/saulo-duarte/studycentre/internal/page"
)

// decodeStrict decodes a single YAML document, rejecting unknown fields.
func decodeStrict(data []byte, out interface{}) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse yaml: multiple YAML documents are not supported")
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// salvageable lists the page fields a page can render without, tried in
// order. A quiz or inline check that fails to decode costs only that part.
var salvageable = [][]string{
	{"quiz"},
	{"inline_checks"},
	{"quiz", "inline_checks"},
}

// salvagePage retries a page that failed to decode with its question
// blocks removed. ok is false when the page is broken elsewhere.
func salvagePage(data []byte) (p *page.Page, dropped []string, ok bool) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, false
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil, false
	}
	root := doc.Content[0]

	for _, keys := range salvageable {
		trimmed, removed := withoutKeys(root, keys)
		if !removed {
			continue
		}
		out, err := yaml.Marshal(trimmed)
		if err != nil {
			continue
		}
		var candidate page.Page
		if err := decodeStrict(out, &candidate); err == nil {
			return &candidate, keys, true
		}
	}
	return nil, nil, false
}

// withoutKeys copies a mapping node without the given keys. removed is
// false unless every key was present.
func withoutKeys(mapping *yaml.Node, keys []string) (*yaml.Node, bool) {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	out := *mapping
	out.Content = make([]*yaml.Node, 0, len(mapping.Content))
	found := 0
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		if drop[key.Value] {
			found++
			continue
		}
		out.Content = append(out.Content, key, mapping.Content[i+1])
	}
	return &out, found == len(keys)
}
