// Package document turns configuration text into the tree the resolver works
// on and back again.
//
// A tree is a Mapping at the root whose values are scalars (string, integer,
// float, bool, nil or a format specific scalar such as a TOML date), nested
// Mappings or Sequences. Parsers for YAML, TOML, JSON (comments allowed) and
// CBOR are provided; any other source can be plugged in through Parser.
//
// Only single documents are supported. The root must be a mapping; an empty
// input yields an empty mapping.
package document

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Mapping is a key to value container with unique keys.
type Mapping = map[string]any

// Sequence is an ordered, index addressed container.
type Sequence = []any

// Document is a parsed configuration tree.
type Document struct {
	Root Mapping
	// Order lists top-level keys as written when the parser can tell; it may
	// be nil or partial.
	Order []string
}

// Parser turns raw configuration text into a Document.
type Parser interface {
	Parse(r io.Reader) (*Document, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(r io.Reader) (*Document, error)

// Parse implements Parser.
func (f ParserFunc) Parse(r io.Reader) (*Document, error) {
	if f == nil {
		return nil, fmt.Errorf("document: parser is nil")
	}
	return f(r)
}

// Format names a supported document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

var (
	// ErrUnsupportedFormat indicates a format without a registered parser or
	// encoder.
	ErrUnsupportedFormat = errors.New("document: unsupported format")
	// ErrRootNotMapping indicates the top-level value is not a mapping.
	ErrRootNotMapping = errors.New("document: root must be a mapping")
	// ErrMultipleDocuments indicates a stream holding more than one document.
	ErrMultipleDocuments = errors.New("document: multiple documents are not supported")
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatYAML, FormatTOML, FormatJSON, FormatCBOR}
}

// ParseFormat converts a user supplied name (case insensitive, aliases
// accepted) into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath infers the format from a file extension, returning an empty
// Format when the extension is unknown.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return ""
	}
	format, err := ParseFormat(ext)
	if err != nil {
		return ""
	}
	return format
}

// ParserFor returns the built-in parser for format.
func ParserFor(format Format) (Parser, error) {
	switch format {
	case FormatYAML:
		return YAMLParser(), nil
	case FormatTOML:
		return TOMLParser(), nil
	case FormatJSON:
		return JSONParser(), nil
	case FormatCBOR:
		return CBORParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func rootMapping(value any) (Mapping, error) {
	if value == nil {
		return Mapping{}, nil
	}
	root, ok := Normalize(value).(Mapping)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", ErrRootNotMapping, value)
	}
	return root, nil
}
