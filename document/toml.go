package document

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// TOMLParser parses a TOML document. Key order is not recorded.
func TOMLParser() Parser {
	return ParserFunc(parseTOML)
}

func parseTOML(r io.Reader) (*Document, error) {
	raw := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("document: decode toml: %w", err)
	}
	return &Document{Root: NormalizeMapping(raw)}, nil
}
