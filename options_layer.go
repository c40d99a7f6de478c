package appconfig

import (
	"github.com/goliatone/go-appconfig/document"
	"github.com/goliatone/go-appconfig/layering"
)

// LayerWith merges layers ordered strongest to weakest with the current
// document as the fallback, returning a new Config with the merged document.
// The receiver is left untouched.
func (c *Config) LayerWith(layers ...document.Mapping) *Config {
	combined := make([]map[string]any, 0, len(layers)+1)
	for _, layer := range layers {
		combined = append(combined, document.NormalizeMapping(layer))
	}
	if c == nil {
		if len(layers) == 0 {
			return nil
		}
		return newConfig(layering.MergeLayers(combined...), nil, configOptions{})
	}

	combined = append(combined, c.root)
	return newConfig(layering.MergeLayers(combined...), c.keys, c.cfg)
}
