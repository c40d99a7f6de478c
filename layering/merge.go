// Package layering deep copies and merges configuration document trees.
//
// Trees are built from map[string]any mappings, []any sequences and scalar
// leaves. Neither Clone nor MergeLayers ever shares a container with its
// inputs, so the results can be handed out without exposing the originals.
package layering

// MergeLayers composes documents ordered from strongest to weakest, returning
// a new mapping that keeps every key set by a stronger layer while filling
// missing keys from weaker ones. Nested mappings merge key by key; any other
// value, sequences included, is taken whole from the strongest layer that
// defines it. Nil layers are skipped.
func MergeLayers(layers ...map[string]any) map[string]any {
	merged := map[string]any{}
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i] == nil {
			continue
		}
		merged = mergeMapping(layers[i], merged)
	}
	return merged
}

// mergeMapping returns a new mapping holding weak overlaid with strong. weak
// is owned by the caller and already detached from any input.
func mergeMapping(strong, weak map[string]any) map[string]any {
	result := make(map[string]any, len(weak)+len(strong))
	for key, value := range weak {
		result[key] = value
	}
	for key, value := range strong {
		existing, ok := result[key]
		if !ok {
			result[key] = Clone(value)
			continue
		}
		result[key] = mergeValue(value, existing)
	}
	return result
}

func mergeValue(strong, weak any) any {
	strongMap, ok := strong.(map[string]any)
	if !ok {
		return Clone(strong)
	}
	weakMap, ok := weak.(map[string]any)
	if !ok {
		return Clone(strong)
	}
	return mergeMapping(strongMap, weakMap)
}
