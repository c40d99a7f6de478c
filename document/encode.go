package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes root to w in format. Mapping keys are emitted in sorted order
// by every encoder.
func Encode(w io.Writer, format Format, root Mapping) error {
	if root == nil {
		root = Mapping{}
	}
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(root); err != nil {
			return fmt.Errorf("document: encode yaml: %w", err)
		}
		return encoder.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(root); err != nil {
			return fmt.Errorf("document: encode toml: %w", err)
		}
		return nil
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(root); err != nil {
			return fmt.Errorf("document: encode json: %w", err)
		}
		return nil
	case FormatCBOR:
		if err := cborEncMode.NewEncoder(w).Encode(root); err != nil {
			return fmt.Errorf("document: encode cbor: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
