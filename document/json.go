package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// JSONParser parses a JSON object. Comments and trailing commas are accepted;
// integers stay integers. Top-level key order is recorded.
func JSONParser() Parser {
	return ParserFunc(parseJSON)
}

func parseJSON(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: read json: %w", err)
	}
	data = jsonc.ToJSON(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return &Document{Root: Mapping{}}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	open, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("document: decode json: %w", err)
	}
	if open == nil {
		return &Document{Root: Mapping{}}, nil
	}
	if delim, ok := open.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w, got %v", ErrRootNotMapping, open)
	}

	root := Mapping{}
	var order []string
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("document: decode json: %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("document: decode json: unexpected key %v", token)
		}
		var value any
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("document: decode json key %q: %w", key, err)
		}
		if _, seen := root[key]; !seen {
			order = append(order, key)
		}
		root[key] = Normalize(value)
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("document: decode json: %w", err)
	}
	if _, err := decoder.Token(); err == nil {
		return nil, ErrMultipleDocuments
	} else if err != io.EOF {
		return nil, fmt.Errorf("document: decode json: %w", err)
	}
	return &Document{Root: root, Order: order}, nil
}
