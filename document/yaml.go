package document

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses a single YAML document. Top-level key order is recorded.
func YAMLParser() Parser {
	return ParserFunc(parseYAML)
}

func parseYAML(r io.Reader) (*Document, error) {
	decoder := yaml.NewDecoder(r)

	var node yaml.Node
	if err := decoder.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{Root: Mapping{}}, nil
		}
		return nil, fmt.Errorf("document: decode yaml: %w", err)
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); err == nil {
		return nil, ErrMultipleDocuments
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("document: decode yaml: %w", err)
	}

	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("document: decode yaml: %w", err)
	}
	root, err := rootMapping(raw)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, Order: yamlKeyOrder(&node)}, nil
}

func yamlKeyOrder(node *yaml.Node) []string {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	order := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Kind != yaml.ScalarNode || key.Tag == "!!merge" {
			continue
		}
		order = append(order, key.Value)
	}
	return order
}
